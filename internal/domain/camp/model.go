// Package camp handles outreach camp creation: persisting the camp record,
// attaching the doctor's signed consent form, and preparing the WhatsApp
// confirmation for the hosting doctor.
package camp

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("camp not found")

// Status is a camp's lifecycle state at creation time.
type Status string

const (
	// StatusScheduled: the camp date lies in the future.
	StatusScheduled Status = "scheduled"
	// StatusActive: the camp runs today or its date has passed.
	StatusActive Status = "active"
)

// Camp is a screening camp hosted at a doctor's clinic.
type Camp struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	CampDate        time.Time `json:"camp_date"`
	Status          Status    `json:"status"`
	TotalPatients   int       `json:"total_patients"`
	ConsentFormPath *string   `json:"consent_form_path"`
	CreatedAt       time.Time `json:"created_at"`
}

// DeriveStatus classifies a camp by its date: strictly after today's local
// midnight means scheduled, today or earlier means active. Comparison uses
// now's location so a camp created late in the evening for "tomorrow" still
// counts as scheduled.
func DeriveStatus(campDate, now time.Time) Status {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	cy, cm, cd := campDate.Date()
	day := time.Date(cy, cm, cd, 0, 0, 0, 0, now.Location())

	if day.After(today) {
		return StatusScheduled
	}
	return StatusActive
}
