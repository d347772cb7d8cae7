package middleware

import (
	"strings"

	"aquamarket/internal/config"
	"aquamarket/internal/core/domain"
	"aquamarket/internal/pkg/jwt"
	"aquamarket/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by AuthMiddleware.
const (
	LocalEmail = "email"
	LocalRole  = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// and role in the request context. Handlers pass them to the core as
// explicit parameters.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// CallerEmail returns the authenticated caller's email from the context.
func CallerEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}

// CallerRole returns the authenticated caller's role from the context.
func CallerRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals(LocalRole).(string)
	return domain.Role(role)
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CallerRole(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the administrator role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// OperatorOnly middleware allows only operators
func OperatorOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleOperator)
}
