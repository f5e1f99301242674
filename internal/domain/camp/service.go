package camp

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulsepharma/outreach/internal/domain/doctor"
	"github.com/pulsepharma/outreach/internal/domain/identity"
	"github.com/pulsepharma/outreach/internal/platform/blobstore"
	"github.com/pulsepharma/outreach/internal/platform/notification"
)

// consentDir is the blob prefix consent forms live under.
const consentDir = "consents"

// messageDateLayout renders camp dates inside WhatsApp messages.
const messageDateLayout = "02/01/2006"

type Service struct {
	repo        Repository
	doctors     *doctor.Service
	blobs       blobstore.Store
	templates   *notification.TemplateEngine
	countryCode string
	logger      zerolog.Logger
	now         func() time.Time
}

func NewService(repo Repository, doctors *doctor.Service, blobs blobstore.Store, templates *notification.TemplateEngine, countryCode string, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		doctors:     doctors,
		blobs:       blobs,
		templates:   templates,
		countryCode: countryCode,
		logger:      logger.With().Str("component", "camp").Logger(),
		now:         time.Now,
	}
}

// CreateInput is everything the field staff submits for a new camp. Consent
// is nil when no form was uploaded.
type CreateInput struct {
	DoctorID        uuid.UUID
	CampDate        time.Time
	WhatsappNumber  string
	ConsentFilename string
	ConsentType     string
	Consent         io.Reader
}

// CreateResult is the created camp plus the WhatsApp confirmation link the
// caller opens on their phone. WhatsAppLink is "" when the doctor has no
// reachable number.
type CreateResult struct {
	Camp         *Camp  `json:"camp"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

// Create runs the full camp creation flow: refresh the doctor's WhatsApp
// number, persist the camp with its derived status, attach the consent form,
// and build the confirmation message.
func (s *Service) Create(ctx context.Context, ident *identity.Identity, in CreateInput) (*CreateResult, error) {
	if in.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if in.CampDate.IsZero() {
		return nil, fmt.Errorf("camp_date is required")
	}

	// Validate the consent upfront so a bad file fails the whole request
	// instead of leaving a consent-less camp behind.
	var consentType string
	if in.Consent != nil {
		var err error
		consentType, err = blobstore.ValidateUpload(in.ConsentFilename, in.ConsentType)
		if err != nil {
			return nil, err
		}
	}

	doc, err := s.doctors.Get(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	// The submitted number becomes the doctor's number of record. Failure
	// here must not block the camp.
	if in.WhatsappNumber != "" {
		if err := s.doctors.UpdateWhatsappNumber(ctx, doc.ID, in.WhatsappNumber); err != nil {
			s.logger.Warn().Err(err).Str("doctor_id", doc.ID.String()).
				Msg("failed to update doctor whatsapp number")
		} else {
			doc.WhatsappNumber = &in.WhatsappNumber
		}
	}

	c := &Camp{
		UserID:        ident.ID,
		DoctorID:      doc.ID,
		CampDate:      in.CampDate,
		Status:        DeriveStatus(in.CampDate, s.now()),
		TotalPatients: 0,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if in.Consent != nil {
		path := fmt.Sprintf("%s/%s.%s", consentDir, c.ID, blobstore.Extension(in.ConsentFilename))
		if _, err := s.blobs.Upload(ctx, path, consentType, in.Consent, true); err != nil {
			return nil, fmt.Errorf("upload consent form: %w", err)
		}
		if err := s.repo.SetConsentPath(ctx, c.ID, path); err != nil {
			return nil, err
		}
		c.ConsentFormPath = &path
	}

	s.logger.Info().Str("camp_id", c.ID.String()).Str("doctor_id", doc.ID.String()).
		Str("status", string(c.Status)).Str("user_id", ident.ID).Msg("camp created")

	return &CreateResult{
		Camp:         c,
		WhatsAppLink: s.confirmationLink(doc, c.CampDate),
	}, nil
}

// confirmationLink renders the doctor-facing confirmation message and wraps
// it in a wa.me link.
func (s *Service) confirmationLink(doc *doctor.Doctor, campDate time.Time) string {
	phone := notification.NormalizePhone(doc.ContactNumber(), s.countryCode)
	if phone == "" {
		return ""
	}
	message, err := s.templates.Render(notification.CampConfirmationTemplateID, map[string]string{
		"doctor_name": doc.Name,
		"camp_date":   campDate.Format(messageDateLayout),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("render camp confirmation")
		return ""
	}
	return notification.BuildWhatsAppLink(phone, message)
}

// Get loads a camp by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Camp, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMine returns a page of the caller's camps with the total count.
func (s *Service) ListMine(ctx context.Context, ident *identity.Identity, limit, offset int) ([]*Camp, int, error) {
	camps, total, err := s.repo.ListByUser(ctx, ident.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if camps == nil {
		camps = []*Camp{}
	}
	return camps, total, nil
}

// DownloadConsent streams a camp's consent form.
func (s *Service) DownloadConsent(ctx context.Context, id uuid.UUID) (io.ReadCloser, *blobstore.ObjectInfo, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if c.ConsentFormPath == nil {
		return nil, nil, blobstore.ErrBlobNotFound
	}
	return s.blobs.Download(ctx, *c.ConsentFormPath)
}
