// Package territory computes the set of territories a logged-in field staff
// member may see. Executives see their own territory; managers see every
// executive territory they oversee.
package territory

import (
	"fmt"
	"strings"

	"github.com/pulsepharma/outreach/internal/domain/identity"
)

// Warning flags a scope that resolved to less than the caller likely
// expected. Warnings are advisory: the request still succeeds, with an empty
// result where applicable.
type Warning string

const (
	// WarnTerritoryUnset: an executive whose directory row has no territory.
	WarnTerritoryUnset Warning = "territory_unset"
	// WarnNoManagedTerritories: a manager with no usable executive
	// territories across their rows.
	WarnNoManagedTerritories Warning = "no_managed_territories"
	// WarnNoDoctorsInScope: the scope is fine but matches no doctors.
	WarnNoDoctorsInScope Warning = "no_doctors_in_scope"
)

// Scope is the resolved visibility set. Territories are deduplicated and
// keep first-appearance order.
type Scope struct {
	Role        identity.Role `json:"role"`
	Territories []string      `json:"territories"`
}

// ForIdentity derives the scope for ident. The second return is the warning
// raised when the scope came out empty, or "".
func ForIdentity(ident *identity.Identity) (Scope, Warning) {
	scope := Scope{Role: ident.Role}

	switch ident.Role {
	case identity.RoleBM:
		scope.Territories = splitTerritories(ident.ManagedTerritories)
		if len(scope.Territories) == 0 {
			return scope, WarnNoManagedTerritories
		}
	default:
		if ident.Territory == nil || strings.TrimSpace(*ident.Territory) == "" {
			return scope, WarnTerritoryUnset
		}
		scope.Territories = []string{strings.TrimSpace(*ident.Territory)}
	}
	return scope, ""
}

// splitTerritories turns the stored comma-joined form back into a clean set:
// entries are trimmed, blanks dropped, duplicates collapsed to their first
// occurrence.
func splitTerritories(joined string) []string {
	if joined == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(joined, ",") {
		t := strings.TrimSpace(part)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// IsEmpty reports whether the scope grants visibility into no territory.
func (s Scope) IsEmpty() bool {
	return len(s.Territories) == 0
}

// Contains reports whether t falls inside the scope.
func (s Scope) Contains(t string) bool {
	for _, have := range s.Territories {
		if have == t {
			return true
		}
	}
	return false
}

// Description renders the scope for log lines.
func (s Scope) Description() string {
	if s.IsEmpty() {
		return "no territories"
	}
	if s.Role == identity.RoleBM {
		return fmt.Sprintf("%d managed territories (%s)", len(s.Territories), strings.Join(s.Territories, ", "))
	}
	return "territory " + s.Territories[0]
}
