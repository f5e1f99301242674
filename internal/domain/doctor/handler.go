package doctor

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pulsepharma/outreach/internal/domain/identity"
	"github.com/pulsepharma/outreach/internal/platform/telemetry"
)

type Handler struct {
	svc     *Service
	metrics *telemetry.Metrics
}

func NewHandler(svc *Service, metrics *telemetry.Metrics) *Handler {
	return &Handler{svc: svc, metrics: metrics}
}

// RegisterRoutes mounts doctor routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/doctors", h.handleList)
	g.POST("/doctors", h.handleAdd)
	g.PUT("/doctors/:id/whatsapp", h.handleUpdateWhatsapp)
}

func (h *Handler) handleList(c echo.Context) error {
	ident := identity.FromContext(c)

	h.metrics.DoctorQueries.Inc()
	result, err := h.svc.ListVisible(c.Request().Context(), ident)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list doctors"})
	}
	return c.JSON(http.StatusOK, result)
}

type addRequest struct {
	ImacxCode      string  `json:"imacx_code"`
	Name           string  `json:"name"`
	Specialty      *string `json:"specialty"`
	ClinicName     *string `json:"clinic_name"`
	ClinicAddress  *string `json:"clinic_address"`
	City           *string `json:"city"`
	Phone          string  `json:"phone"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Territory      *string `json:"territory"`
	EmployeeCode   *string `json:"employee_code"`
}

func (h *Handler) handleAdd(c echo.Context) error {
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	d := &Doctor{
		ImacxCode:      req.ImacxCode,
		Name:           req.Name,
		Specialty:      req.Specialty,
		ClinicName:     req.ClinicName,
		ClinicAddress:  req.ClinicAddress,
		City:           req.City,
		Phone:          req.Phone,
		WhatsappNumber: req.WhatsappNumber,
		Territory:      req.Territory,
		EmployeeCode:   req.EmployeeCode,
	}
	if err := h.svc.Add(c.Request().Context(), d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, d)
}

type updateWhatsappRequest struct {
	WhatsappNumber string `json:"whatsapp_number"`
}

func (h *Handler) handleUpdateWhatsapp(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid doctor id"})
	}

	var req updateWhatsappRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.svc.UpdateWhatsappNumber(c.Request().Context(), id, req.WhatsappNumber); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
