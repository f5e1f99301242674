// Package doctor manages the doctor roster and its territory-scoped
// visibility. Marketing curates which doctors are open for camp outreach;
// field staff only ever see the curated doctors inside their own scope.
package doctor

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("doctor not found")

// Doctor is a practitioner eligible to host outreach camps.
type Doctor struct {
	ID             uuid.UUID `json:"id"`
	ImacxCode      string    `json:"imacx_code"`
	Name           string    `json:"name"`
	Specialty      *string   `json:"specialty"`
	ClinicName     *string   `json:"clinic_name"`
	ClinicAddress  *string   `json:"clinic_address"`
	City           *string   `json:"city"`
	Phone          string    `json:"phone"`
	WhatsappNumber *string   `json:"whatsapp_number"`
	Territory      *string   `json:"territory"`
	EmployeeCode   *string   `json:"employee_code"`
	// Eligible mirrors the marketing selection flag; only eligible doctors
	// appear in field staff listings.
	Eligible  bool      `json:"is_selected_by_marketing"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactNumber returns the number WhatsApp messages go to: the dedicated
// WhatsApp number when present, the clinic phone otherwise.
func (d *Doctor) ContactNumber() string {
	if d.WhatsappNumber != nil && *d.WhatsappNumber != "" {
		return *d.WhatsappNumber
	}
	return d.Phone
}
