package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	// ListEligible returns marketing-selected doctors whose territory is in
	// territories, ordered by name ascending.
	ListEligible(ctx context.Context, territories []string) ([]*Doctor, error)
	UpdateWhatsappNumber(ctx context.Context, id uuid.UUID, number string) error
}
