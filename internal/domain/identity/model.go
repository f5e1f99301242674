// Package identity resolves field staff logins. An IMACX id maps either to a
// Business Executive (single directory row) or a Business Manager (one row
// per managed executive territory); the resolved identity lives in the
// session slot for the remainder of the visit.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role classifies field staff.
type Role string

const (
	// RoleBE is a Business Executive: owns a single territory.
	RoleBE Role = "BE"
	// RoleBM is a Business Manager: oversees the territories of several
	// executives.
	RoleBM Role = "BM"
)

var (
	// ErrUnknownImacxID reports an IMACX id present in neither directory
	// table.
	ErrUnknownImacxID = errors.New("invalid IMACX ID - user not found")
	// ErrInvalidLink reports a login link whose payload cannot be decoded.
	ErrInvalidLink = errors.New("invalid or corrupted link")
)

// Some directory imports wrote the literal string "undefined" into the id
// column. Such rows get a fresh id at login instead.
const placeholderRowID = "undefined"

// territoryDelimiter separates managed territories in their stored form.
const territoryDelimiter = ","

// Identity is the resolved principal held in the session slot.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	ImacxID   string  `json:"imacx_id"`
	Role      Role    `json:"role"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Territory *string `json:"territory"`
	// ManagedTerritories is the comma-joined list of executive territories a
	// BM oversees. Empty for BEs.
	ManagedTerritories string    `json:"managed_territories,omitempty"`
	LoginTime          time.Time `json:"login_time"`
}

// EmployeeRow is a Business Executive's directory record (users table).
type EmployeeRow struct {
	ID        string
	ImacxID   string
	Email     *string
	Name      string
	Phone     string
	Territory *string
}

// ManagerRow is one of a Business Manager's directory records (usersbm
// table). A BM has one row per executive territory they manage.
type ManagerRow struct {
	ID          string
	ImacxID     string
	Email       *string
	Name        string
	Phone       string
	Territory   *string
	BETerritory *string
}

// canonicalManagerID returns the stable id for a BM login: the first row's id
// in id order, unless that id is blank or a placeholder, in which case a
// fresh one is minted.
func canonicalManagerID(first *ManagerRow) string {
	if first.ID != "" && first.ID != placeholderRowID {
		return first.ID
	}
	return uuid.NewString()
}

// joinManagedTerritories collects the executive territories from a BM's rows
// in row order. Rows whose territory is absent or whitespace-only are
// skipped; surviving values are joined verbatim, duplicates included.
func joinManagedTerritories(rows []*ManagerRow) string {
	var parts []string
	for _, row := range rows {
		if row.BETerritory == nil || strings.TrimSpace(*row.BETerritory) == "" {
			continue
		}
		parts = append(parts, *row.BETerritory)
	}
	return strings.Join(parts, territoryDelimiter)
}

// fallbackEmail derives the address used when the directory row carries none.
func fallbackEmail(imacxID string) string {
	return imacxID + "@company.com"
}
