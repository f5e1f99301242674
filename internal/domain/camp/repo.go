package camp

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Camp) error
	GetByID(ctx context.Context, id uuid.UUID) (*Camp, error)
	// SetConsentPath records where the signed consent form was stored.
	SetConsentPath(ctx context.Context, id uuid.UUID, path string) error
	// ListByUser returns a page of the caller's camps, newest camp date
	// first, together with the total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Camp, int, error)
}
