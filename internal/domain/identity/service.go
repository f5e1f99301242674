package identity

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulsepharma/outreach/internal/platform/authclient"
	"github.com/pulsepharma/outreach/internal/platform/session"
)

type Service struct {
	directory DirectoryRepository
	issuer    authclient.Issuer
	sessions  session.Store
	ttl       time.Duration
	linkBase  string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(directory DirectoryRepository, issuer authclient.Issuer, sessions session.Store, ttl time.Duration, linkBase string, logger zerolog.Logger) *Service {
	return &Service{
		directory: directory,
		issuer:    issuer,
		sessions:  sessions,
		ttl:       ttl,
		linkBase:  linkBase,
		logger:    logger.With().Str("component", "identity").Logger(),
		now:       time.Now,
	}
}

// SessionTTL reports how long a login stays valid.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// Resolve maps an IMACX id to an Identity. Executives are checked first; a
// single users row makes the caller a BE. Otherwise every usersbm row for
// the id is collected and the caller is a BM. An id in neither table fails
// with ErrUnknownImacxID.
func (s *Service) Resolve(ctx context.Context, imacxID string) (*Identity, error) {
	emp, err := s.directory.FindEmployee(ctx, imacxID)
	if err != nil {
		return nil, err
	}
	if emp != nil {
		return s.resolveEmployee(ctx, imacxID, emp), nil
	}

	rows, err := s.directory.FindManagers(ctx, imacxID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUnknownImacxID
	}
	return s.resolveManager(imacxID, rows), nil
}

// resolveEmployee asks the central auth service to vouch for the executive.
// Any failure there, timeout included, degrades to the directory row: the
// executive is already known locally, so a slow or down auth service must
// not lock the field out.
func (s *Service) resolveEmployee(ctx context.Context, imacxID string, emp *EmployeeRow) *Identity {
	ident := &Identity{
		ImacxID:   imacxID,
		Role:      RoleBE,
		Name:      emp.Name,
		Phone:     emp.Phone,
		Territory: emp.Territory,
		LoginTime: s.now().UTC(),
	}

	sess, err := s.issuer.IssueSession(ctx, imacxID)
	if err == nil {
		ident.ID = sess.Principal.ID
		ident.Email = sess.Principal.Email
		return ident
	}

	s.logger.Warn().Err(err).Str("imacx_id", imacxID).
		Msg("auth service unavailable, using directory identity")

	ident.ID = emp.ID
	if emp.Email != nil && *emp.Email != "" {
		ident.Email = *emp.Email
	} else {
		ident.Email = fallbackEmail(imacxID)
	}
	return ident
}

// resolveManager builds a BM identity from the full row set. Managers never
// touch the auth service.
func (s *Service) resolveManager(imacxID string, rows []*ManagerRow) *Identity {
	first := rows[0]

	ident := &Identity{
		ID:                 canonicalManagerID(first),
		ImacxID:            imacxID,
		Role:               RoleBM,
		Name:               first.Name,
		Phone:              first.Phone,
		Territory:          first.Territory,
		ManagedTerritories: joinManagedTerritories(rows),
		LoginTime:          s.now().UTC(),
	}
	if first.Email != nil && *first.Email != "" {
		ident.Email = *first.Email
	} else {
		ident.Email = fallbackEmail(imacxID)
	}
	return ident
}

// Login resolves imacxID and persists the identity in the session slot under
// a fresh session id, which it returns with the identity.
func (s *Service) Login(ctx context.Context, imacxID string) (string, *Identity, error) {
	imacxID = strings.TrimSpace(imacxID)
	if imacxID == "" {
		return "", nil, fmt.Errorf("imacx_id is required")
	}

	ident, err := s.Resolve(ctx, imacxID)
	if err != nil {
		return "", nil, err
	}

	sid := uuid.NewString()
	if err := s.sessions.Put(ctx, sid, ident, s.ttl); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info().Str("imacx_id", imacxID).Str("role", string(ident.Role)).
		Str("user_id", ident.ID).Msg("login")
	return sid, ident, nil
}

// LoginFromLink decodes an auto-login payload and logs in with it. The
// payload is the base64-encoded IMACX id carried in the link's data
// parameter.
func (s *Service) LoginFromLink(ctx context.Context, encoded string) (string, *Identity, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(decoded) == 0 {
		return "", nil, ErrInvalidLink
	}
	return s.Login(ctx, string(decoded))
}

// BuildLoginLink returns the auto-login URL for imacxID.
func (s *Service) BuildLoginLink(imacxID string) (string, error) {
	imacxID = strings.TrimSpace(imacxID)
	if imacxID == "" {
		return "", fmt.Errorf("imacx_id is required")
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(imacxID))
	return s.linkBase + "/auth?data=" + url.QueryEscape(encoded), nil
}

// Current loads the identity for a session id. The second return is false
// when the slot is absent, expired, or unreadable.
func (s *Service) Current(ctx context.Context, sid string) (*Identity, bool, error) {
	var ident Identity
	ok, err := s.sessions.Get(ctx, sid, &ident)
	if err != nil || !ok {
		return nil, false, err
	}
	return &ident, true, nil
}

// SignOut discards the session slot.
func (s *Service) SignOut(ctx context.Context, sid string) error {
	return s.sessions.Clear(ctx, sid)
}
