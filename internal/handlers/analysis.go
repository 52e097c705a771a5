package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
	"sentra/internal/services/analysis"
	"sentra/internal/utils/response"
)

type AnalysisHandler struct {
	pipeline *analysis.Pipeline
}

func NewAnalysisHandler(pipeline *analysis.Pipeline) *AnalysisHandler {
	return &AnalysisHandler{pipeline: pipeline}
}

// Analyze runs the full pipeline for one entity and returns the fresh
// assessment.
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	score, err := h.pipeline.AnalyzeEntity(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrEntityNotFound) {
			return response.NotFound(c, "entity not found")
		}
		return response.ServerError(c, "analysis failed")
	}
	return c.JSON(fiber.Map{"risk_score": score})
}

// AnalyzeBatch analyzes the listed entities, or every entity when no
// list is given.
func (h *AnalysisHandler) AnalyzeBatch(c *fiber.Ctx) error {
	var input struct {
		EntityIDs []uint `json:"entity_ids"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "invalid request body")
		}
	}

	var (
		result analysis.BatchResult
		err    error
	)
	if len(input.EntityIDs) == 0 {
		result, err = h.pipeline.AnalyzeAll(c.UserContext())
		if err != nil {
			return response.ServerError(c, "batch analysis failed")
		}
	} else {
		result = h.pipeline.AnalyzeBatch(c.UserContext(), input.EntityIDs)
	}

	return c.JSON(fiber.Map{"result": result})
}

// GetScore returns the stored assessment without recomputing.
func (h *AnalysisHandler) GetScore(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	score, err := h.pipeline.GetScore(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return response.NotFound(c, "entity has no assessment yet")
		}
		return response.ServerError(c, "failed to get risk score")
	}
	return c.JSON(fiber.Map{"risk_score": score})
}
