package identity

import "context"

// DirectoryRepository reads the staff directory tables.
type DirectoryRepository interface {
	// FindEmployee returns the executive row for imacxID, or (nil, nil) when
	// no such row exists.
	FindEmployee(ctx context.Context, imacxID string) (*EmployeeRow, error)
	// FindManagers returns every manager row for imacxID ordered by id
	// ascending. The ordering makes the first row, and with it the canonical
	// BM id, stable across logins. Returns an empty slice when none exist.
	FindManagers(ctx context.Context, imacxID string) ([]*ManagerRow, error)
}
