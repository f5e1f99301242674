package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsepharma/outreach/internal/platform/session"
	"github.com/pulsepharma/outreach/internal/platform/telemetry"
)

const contextKey = "identity"

// Handler exposes the authentication endpoints.
type Handler struct {
	svc           *Service
	metrics       *telemetry.Metrics
	secureCookies bool
}

func NewHandler(svc *Service, metrics *telemetry.Metrics, secureCookies bool) *Handler {
	return &Handler{svc: svc, metrics: metrics, secureCookies: secureCookies}
}

// RegisterRoutes mounts the auth routes on the supplied group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.handleLogin)
	g.POST("/auth/logout", h.handleLogout)
	g.POST("/auth/link", h.handleBuildLink)
	g.GET("/auth/me", h.handleMe, h.SessionMiddleware())
}

type loginRequest struct {
	ImacxID string `json:"imacx_id"`
	// Data carries the base64 payload of an auto-login link. When set it
	// takes precedence over ImacxID.
	Data string `json:"data"`
}

type loginResponse struct {
	User *Identity `json:"user"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	// A client that is already logged in keeps its session.
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if ident, ok, _ := h.svc.Current(c.Request().Context(), cookie.Value); ok {
			return c.JSON(http.StatusOK, loginResponse{User: ident})
		}
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ImacxID == "" && req.Data == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "imacx_id is required"})
	}

	var (
		sid   string
		ident *Identity
		err   error
	)
	if req.Data != "" {
		sid, ident, err = h.svc.LoginFromLink(c.Request().Context(), req.Data)
	} else {
		sid, ident, err = h.svc.Login(c.Request().Context(), req.ImacxID)
	}
	if err != nil {
		h.metrics.Logins.WithLabelValues("", "failure").Inc()
		switch {
		case errors.Is(err, ErrInvalidLink):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrUnknownImacxID):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "authentication failed"})
		}
	}

	h.metrics.Logins.WithLabelValues(string(ident.Role), "success").Inc()
	session.SetCookie(c.Response(), sid, ident.LoginTime.Add(h.svc.SessionTTL()), h.secureCookies)
	return c.JSON(http.StatusOK, loginResponse{User: ident})
}

func (h *Handler) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.svc.SignOut(c.Request().Context(), cookie.Value); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "sign out failed"})
		}
	}
	session.ClearCookie(c.Response(), h.secureCookies)
	return c.NoContent(http.StatusNoContent)
}

type buildLinkRequest struct {
	ImacxID string `json:"imacx_id"`
}

func (h *Handler) handleBuildLink(c echo.Context) error {
	var req buildLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	link, err := h.svc.BuildLoginLink(req.ImacxID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"link": link})
}

func (h *Handler) handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, loginResponse{User: FromContext(c)})
}

// SessionMiddleware authenticates requests from the session cookie and makes
// the identity available via FromContext. Requests without a live session
// get 401.
func (h *Handler) SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}
			ident, ok, err := h.svc.Current(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			WithIdentity(c, ident)
			return next(c)
		}
	}
}

// WithIdentity attaches ident to the request context.
func WithIdentity(c echo.Context, ident *Identity) {
	c.Set(contextKey, ident)
}

// FromContext returns the identity attached by SessionMiddleware, or nil.
func FromContext(c echo.Context) *Identity {
	ident, _ := c.Get(contextKey).(*Identity)
	return ident
}
