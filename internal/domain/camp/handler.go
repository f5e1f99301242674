package camp

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsepharma/outreach/internal/domain/doctor"
	"github.com/pulsepharma/outreach/internal/domain/identity"
	"github.com/pulsepharma/outreach/internal/platform/blobstore"
	"github.com/pulsepharma/outreach/internal/platform/telemetry"
	"github.com/pulsepharma/outreach/pkg/pagination"
)

// campDateLayout is the wire format for camp dates.
const campDateLayout = "2006-01-02"

type Handler struct {
	svc     *Service
	metrics *telemetry.Metrics
}

func NewHandler(svc *Service, metrics *telemetry.Metrics) *Handler {
	return &Handler{svc: svc, metrics: metrics}
}

// RegisterRoutes mounts camp routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/camps", h.handleCreate)
	g.GET("/camps", h.handleListMine)
	g.GET("/camps/:id", h.handleGet)
	g.GET("/camps/:id/consent", h.handleDownloadConsent)
}

// handleCreate accepts a multipart form: doctor_id, camp_date (YYYY-MM-DD),
// whatsapp_number, and an optional consent file field.
func (h *Handler) handleCreate(c echo.Context) error {
	ident := identity.FromContext(c)

	doctorID, err := uuid.Parse(c.FormValue("doctor_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid doctor_id"})
	}
	campDate, err := time.ParseInLocation(campDateLayout, c.FormValue("camp_date"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "camp_date must be YYYY-MM-DD"})
	}

	in := CreateInput{
		DoctorID:       doctorID,
		CampDate:       campDate,
		WhatsappNumber: c.FormValue("whatsapp_number"),
	}

	if file, err := c.FormFile("consent"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open uploaded file"})
		}
		defer src.Close()
		in.Consent = src
		in.ConsentFilename = file.Filename
		in.ConsentType = file.Header.Get("Content-Type")
	}

	result, err := h.svc.Create(c.Request().Context(), ident, in)
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, blobstore.ErrInvalidContentType):
			return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": "only JPG, PNG, and PDF files are allowed"})
		case errors.Is(err, blobstore.ErrFileTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file size must be less than 5MB"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create camp"})
		}
	}

	h.metrics.CampsCreated.Inc()
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) handleListMine(c echo.Context) error {
	p := pagination.FromContext(c)
	camps, total, err := h.svc.ListMine(c.Request().Context(), identity.FromContext(c), p.Limit, p.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list camps"})
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(camps, total, p.Limit, p.Offset))
}

func (h *Handler) handleGet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid camp id"})
	}
	camp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load camp"})
	}
	return c.JSON(http.StatusOK, camp)
}

func (h *Handler) handleDownloadConsent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid camp id"})
	}

	rc, info, err := h.svc.DownloadConsent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, blobstore.ErrBlobNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "consent form not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load consent form"})
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, info.ContentType, rc)
}
