package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
	"sentra/internal/services/report"
	"sentra/internal/utils/response"
)

type ReportHandler struct {
	generator *report.Generator
	reports   repositories.ReportRepository
}

func NewReportHandler(generator *report.Generator, reports repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{generator: generator, reports: reports}
}

// Generate builds a fresh dossier for the entity.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	dossier, err := h.generator.Generate(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrEntityNotFound) {
			return response.NotFound(c, "entity not found")
		}
		return response.ServerError(c, "report generation failed")
	}
	return c.JSON(fiber.Map{"report": dossier})
}

// Latest returns the most recently stored dossier for the entity,
// cache first. Report rows are immutable once written, so an hour of
// staleness only matters after a re-analysis, which invalidates the key.
func (h *ReportHandler) Latest(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	if repositories.CacheService != nil {
		if cached, err := repositories.CacheService.GetReport(c.UserContext(), id); err == nil && cached != nil {
			return c.JSON(fiber.Map{"report": cached})
		}
	}

	stored, err := h.reports.GetLatestByEntity(c.UserContext(), id)
	if err != nil {
		return response.NotFound(c, "no report found for entity")
	}
	if repositories.CacheService != nil {
		_ = repositories.CacheService.CacheReport(c.UserContext(), stored)
	}
	return c.JSON(fiber.Map{"report": stored})
}
