// Package middleware provides HTTP middleware for the API: JWT
// authentication and role checks for the fiber router.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/utils"
	"sentra/internal/utils/response"
)

// AuthMiddleware validates JWT tokens and adds the claims to the
// request context. Token versions are checked against the store so a
// logout invalidates every outstanding token.
type AuthMiddleware struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

func NewAuthMiddleware(users repositories.UserRepository, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{users: users, logger: logger}
}

// Handler checks for a Bearer token, a valid signature, and a token
// version matching the user's current one.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		m.logger.Debug("token validation failed", zap.Error(err))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		m.logger.Debug("token user not found", zap.Uint("user_id", claims.UserID))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Error(c, fiber.StatusUnauthorized, "session expired")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminOnly verifies that the request carries admin claims. Must run
// after Handler.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "invalid claims")
	}
	if !claims.IsAdmin() {
		return response.Forbidden(c)
	}
	return c.Next()
}
