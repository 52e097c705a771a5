package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims carries the authenticated analyst through the request context.
// TokenVersion lets logout invalidate every outstanding token at once.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// IsAdmin reports whether the claims belong to an admin user.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
