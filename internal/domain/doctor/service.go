package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulsepharma/outreach/internal/domain/identity"
	"github.com/pulsepharma/outreach/internal/domain/territory"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "doctor").Logger()}
}

// ListResult carries a visibility query's outcome. Warning is set when the
// list is empty for a reason worth telling the caller about.
type ListResult struct {
	Doctors []*Doctor         `json:"doctors"`
	Scope   string            `json:"scope"`
	Warning territory.Warning `json:"warning,omitempty"`
}

// ListVisible returns the eligible doctors inside ident's territory scope.
// An identity with no resolvable scope gets an empty list and a warning; the
// roster is never queried in that case.
func (s *Service) ListVisible(ctx context.Context, ident *identity.Identity) (*ListResult, error) {
	scope, warn := territory.ForIdentity(ident)
	if scope.IsEmpty() {
		s.logger.Warn().Str("imacx_id", ident.ImacxID).Str("warning", string(warn)).
			Msg("doctor listing requested with empty scope")
		return &ListResult{Doctors: []*Doctor{}, Scope: scope.Description(), Warning: warn}, nil
	}

	doctors, err := s.repo.ListEligible(ctx, scope.Territories)
	if err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}

	result := &ListResult{Doctors: doctors, Scope: scope.Description()}
	if len(doctors) == 0 {
		result.Warning = territory.WarnNoDoctorsInScope
		s.logger.Info().Str("imacx_id", ident.ImacxID).Str("scope", scope.Description()).
			Msg("no eligible doctors in scope")
	}
	return result, nil
}

// Get loads a doctor by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// Add registers a new doctor. New doctors start outside the marketing
// selection; they surface in field listings only once marketing flags them.
func (s *Service) Add(ctx context.Context, d *Doctor) error {
	if d.ImacxCode == "" {
		return fmt.Errorf("imacx_code is required")
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	d.Eligible = false
	return s.repo.Create(ctx, d)
}

// UpdateWhatsappNumber records the number camp confirmations go to.
func (s *Service) UpdateWhatsappNumber(ctx context.Context, id uuid.UUID, number string) error {
	if number == "" {
		return fmt.Errorf("whatsapp_number is required")
	}
	return s.repo.UpdateWhatsappNumber(ctx, id, number)
}
