// Package authclient talks to the central IMACX authentication service. The
// service issues an access token for a field staff IMACX id; outreach only
// needs the principal id and email from the response, the token itself is
// carried but never used for authorization decisions here.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// ErrTimeout reports that the auth service did not answer within the
// configured deadline. Callers fall back to directory-derived identity.
var ErrTimeout = errors.New("authclient: auth service timed out")

// ErrUnavailable reports a non-timeout failure (network error or non-2xx
// response) from the auth service.
var ErrUnavailable = errors.New("authclient: auth service unavailable")

// Principal is the authenticated subject as reported by the auth service.
type Principal struct {
	ID    string
	Email string
}

// Session is a successful issuance from the auth service.
type Session struct {
	Token     string
	Principal Principal
}

// Issuer exchanges an IMACX id for a remote session.
type Issuer interface {
	IssueSession(ctx context.Context, imacxID string) (*Session, error)
}

// Client is the HTTP Issuer backed by the IMACX auth service.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

type issueRequest struct {
	ImacxID string `json:"imacx_id"`
}

type issueResponse struct {
	Session struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	} `json:"session"`
	Error string `json:"error"`
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return &Client{
		http:   httpClient,
		logger: logger.With().Str("component", "authclient").Logger(),
	}
}

// IssueSession asks the auth service to establish a session for imacxID.
// A deadline overrun maps to ErrTimeout so the caller can distinguish
// "slow service" from "service rejected the id".
func (c *Client) IssueSession(ctx context.Context, imacxID string) (*Session, error) {
	var body issueResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(issueRequest{ImacxID: imacxID}).
		SetResult(&body).
		SetError(&body).
		Post("/functions/v1/imacx-login")

	if err != nil {
		if isTimeout(ctx, err) {
			c.logger.Warn().Str("imacx_id", imacxID).Msg("auth service timed out")
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if body.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, body.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	sess := &Session{
		Token: body.Session.AccessToken,
		Principal: Principal{
			ID:    body.Session.User.ID,
			Email: body.Session.User.Email,
		},
	}

	// Some auth service versions omit the user block. Recover the principal
	// from the token claims; the token was just issued by the service we
	// called, so unverified parsing is acceptable for identification.
	if (sess.Principal.ID == "" || sess.Principal.Email == "") && sess.Token != "" {
		if p, ok := principalFromToken(sess.Token); ok {
			if sess.Principal.ID == "" {
				sess.Principal.ID = p.ID
			}
			if sess.Principal.Email == "" {
				sess.Principal.Email = p.Email
			}
		}
	}

	if sess.Principal.ID == "" {
		return nil, fmt.Errorf("%w: response carried no principal", ErrUnavailable)
	}
	return sess, nil
}

func principalFromToken(token string) (Principal, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Principal{}, false
	}
	p := Principal{}
	if sub, err := claims.GetSubject(); err == nil {
		p.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	return p, p.ID != "" || p.Email != ""
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
