package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
	"sentra/internal/utils/response"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Reset wipes every data table and the cache. Admin only.
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := repositories.ResetDatabase(); err != nil {
		return response.ServerError(c, "reset failed")
	}
	if err := repositories.CacheService.FlushAll(c.UserContext()); err != nil {
		return response.ServerError(c, "cache flush failed")
	}
	return response.Success(c, "database reset", nil)
}
