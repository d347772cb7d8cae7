package handlers

import (
	"errors"

	"aquamarket/internal/config"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/core/services"
	"aquamarket/internal/pkg/jwt"
	"aquamarket/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	identityService *services.IdentityService
	cfg             *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *services.IdentityService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		cfg:             cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles account registration
// @Summary Register new account
// @Description Register a new operator or buyer account; it stays pending until an administrator approves it
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, err.Error())
	}

	user, err := h.identityService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateIdentity):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Role must be OPERATOR or BUYER")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "User store unavailable")
		default:
			return response.InternalServerError(c, "Failed to register account")
		}
	}

	return response.Created(c, "Registered, awaiting approval", fiber.Map{
		"email":  user.Email,
		"role":   user.Role,
		"status": user.Status,
	})
}

// Login handles authentication
// @Summary Login
// @Description Authenticate an approved account and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, err.Error())
	}

	user, err := h.identityService.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// One message for unknown email and wrong password.
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, domain.ErrPendingApproval):
			return response.Forbidden(c, "Account pending approval")
		case errors.Is(err, domain.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "User store unavailable")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	token, err := jwt.GenerateAccessToken(user.Email, string(user.Role), h.cfg.JWT.Secret, h.cfg.JWT.AccessTokenMins)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return response.Success(c, "Logged in", fiber.Map{
		"access_token": token,
		"user":         user,
	})
}
