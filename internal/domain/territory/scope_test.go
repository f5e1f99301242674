package territory

import (
	"reflect"
	"testing"

	"github.com/pulsepharma/outreach/internal/domain/identity"
)

func strPtr(s string) *string { return &s }

func TestForIdentity_Executive(t *testing.T) {
	scope, warn := ForIdentity(&identity.Identity{
		Role:      identity.RoleBE,
		Territory: strPtr(" north-1 "),
	})
	if warn != "" {
		t.Errorf("warning = %q", warn)
	}
	if !reflect.DeepEqual(scope.Territories, []string{"north-1"}) {
		t.Errorf("territories = %v", scope.Territories)
	}
	if !scope.Contains("north-1") || scope.Contains("north-2") {
		t.Error("Contains mismatch")
	}
}

func TestForIdentity_ExecutiveWithoutTerritory(t *testing.T) {
	for name, territory := range map[string]*string{
		"nil":   nil,
		"blank": strPtr("   "),
	} {
		t.Run(name, func(t *testing.T) {
			scope, warn := ForIdentity(&identity.Identity{Role: identity.RoleBE, Territory: territory})
			if warn != WarnTerritoryUnset {
				t.Errorf("warning = %q", warn)
			}
			if !scope.IsEmpty() {
				t.Errorf("territories = %v", scope.Territories)
			}
		})
	}
}

func TestForIdentity_ManagerDedupesAndTrims(t *testing.T) {
	scope, warn := ForIdentity(&identity.Identity{
		Role:               identity.RoleBM,
		ManagedTerritories: "north-1, north-2 ,,north-1,  ,south-5",
	})
	if warn != "" {
		t.Errorf("warning = %q", warn)
	}
	if !reflect.DeepEqual(scope.Territories, []string{"north-1", "north-2", "south-5"}) {
		t.Errorf("territories = %v", scope.Territories)
	}
}

func TestForIdentity_ManagerWithoutTerritories(t *testing.T) {
	for name, joined := range map[string]string{
		"empty":       "",
		"only blanks": " , ,  ",
	} {
		t.Run(name, func(t *testing.T) {
			scope, warn := ForIdentity(&identity.Identity{Role: identity.RoleBM, ManagedTerritories: joined})
			if warn != WarnNoManagedTerritories {
				t.Errorf("warning = %q", warn)
			}
			if !scope.IsEmpty() {
				t.Errorf("territories = %v", scope.Territories)
			}
		})
	}
}

func TestScope_Description(t *testing.T) {
	be, _ := ForIdentity(&identity.Identity{Role: identity.RoleBE, Territory: strPtr("north-1")})
	if be.Description() != "territory north-1" {
		t.Errorf("description = %q", be.Description())
	}

	bm, _ := ForIdentity(&identity.Identity{Role: identity.RoleBM, ManagedTerritories: "a,b"})
	if bm.Description() != "2 managed territories (a, b)" {
		t.Errorf("description = %q", bm.Description())
	}

	empty := Scope{}
	if empty.Description() != "no territories" {
		t.Errorf("description = %q", empty.Description())
	}
}
