package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
)

func HealthCheck(c *fiber.Ctx) error {
	redisStatus := "connected"
	var poolStats any
	if err := repositories.CacheService.HealthCheck(c.UserContext()); err != nil {
		redisStatus = "unavailable"
	} else {
		poolStats = repositories.CacheService.GetStats(c.UserContext())
	}

	dbStatus := "connected"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"redis_pool": poolStats,
	})
}
