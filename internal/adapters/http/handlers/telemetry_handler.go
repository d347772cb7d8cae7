package handlers

import (
	"errors"
	"strconv"

	"aquamarket/internal/adapters/http/middleware"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/core/services"
	"aquamarket/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TelemetryHandler handles the measurement journal and certification lookups
type TelemetryHandler struct {
	telemetryService     *services.TelemetryService
	certificationService *services.CertificationService
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(telemetryService *services.TelemetryService, certificationService *services.CertificationService) *TelemetryHandler {
	return &TelemetryHandler{
		telemetryService:     telemetryService,
		certificationService: certificationService,
	}
}

// Record appends one measurement to the caller's journal
// @Summary Record a measurement
// @Description Classifies the readings and appends them to the operator's journal
// @Tags Telemetry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MeasurementInput true "Readings"
// @Success 201 {object} response.Response
// @Router /telemetry [post]
func (h *TelemetryHandler) Record(c *fiber.Ctx) error {
	var req services.MeasurementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, err.Error())
	}

	m, err := h.telemetryService.Record(middleware.CallerEmail(c), &req)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return response.ServiceUnavailable(c, "Measurement store unavailable")
		}
		return response.InternalServerError(c, "Failed to record measurement")
	}
	return response.Created(c, "Measurement recorded", m)
}

// History lists the caller's own journal tail
// @Summary Own measurement history
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {object} response.Response
// @Router /telemetry [get]
func (h *TelemetryHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	history, err := h.telemetryService.History(middleware.CallerEmail(c), limit)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return response.ServiceUnavailable(c, "Measurement store unavailable")
		}
		return response.InternalServerError(c, "Failed to load history")
	}
	return response.Success(c, "", fiber.Map{"measurements": history, "count": len(history)})
}

// Certification reports whether an operator currently holds the badge
// @Summary Certification badge lookup
// @Description Derived from the operator's three most recent measurements; never cached
// @Tags Telemetry
// @Produce json
// @Security BearerAuth
// @Param email path string true "Operator email"
// @Success 200 {object} response.Response
// @Router /certification/{email} [get]
func (h *TelemetryHandler) Certification(c *fiber.Ctx) error {
	email := c.Params("email")

	certified, err := h.certificationService.IsCertified(email)
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return response.ServiceUnavailable(c, "Measurement store unavailable")
		}
		return response.InternalServerError(c, "Failed to evaluate certification")
	}
	return response.Success(c, "", fiber.Map{
		"operator":  domain.NormalizeEmail(email),
		"certified": certified,
	})
}
