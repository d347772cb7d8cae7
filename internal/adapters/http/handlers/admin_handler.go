package handlers

import (
	"errors"

	"aquamarket/internal/adapters/http/middleware"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/core/services"
	"aquamarket/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administration endpoints
type AdminHandler struct {
	identityService *services.IdentityService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(identityService *services.IdentityService) *AdminHandler {
	return &AdminHandler{identityService: identityService}
}

// ApproveRequest represents an approval request body
type ApproveRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Pending lists accounts awaiting approval
// @Summary List pending accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/pending [get]
func (h *AdminHandler) Pending(c *fiber.Ctx) error {
	users, err := h.identityService.PendingUsers(middleware.CallerRole(c))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "Administrator role required")
		}
		return response.ServiceUnavailable(c, "User store unavailable")
	}
	return response.Success(c, "", fiber.Map{"pending": users, "count": len(users)})
}

// Approve transitions a pending account to approved
// @Summary Approve a pending account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApproveRequest true "Account to approve"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, err.Error())
	}

	err := h.identityService.Approve(middleware.CallerRole(c), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Administrator role required")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "No account with that email")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "User store unavailable")
		default:
			return response.InternalServerError(c, "Failed to approve account")
		}
	}
	return response.Success(c, "Account approved", fiber.Map{"email": domain.NormalizeEmail(req.Email)})
}
