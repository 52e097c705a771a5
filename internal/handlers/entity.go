package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sentra/internal/models"
	"sentra/internal/repositories"
	"sentra/internal/utils/pagination"
	"sentra/internal/utils/response"
	"sentra/internal/validation"
)

type EntityHandler struct {
	entities  repositories.EntityRepository
	evidences repositories.EvidenceRepository
	scores    repositories.RiskScoreRepository
}

func NewEntityHandler(
	entities repositories.EntityRepository,
	evidences repositories.EvidenceRepository,
	scores repositories.RiskScoreRepository,
) *EntityHandler {
	return &EntityHandler{entities: entities, evidences: evidences, scores: scores}
}

// List returns entities, filterable by type and name substring.
func (h *EntityHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	filter := repositories.EntityFilter{
		Name: c.Query("name"),
	}
	if t := c.Query("type"); t != "" {
		filter.Type = models.NormalizeEntityType(t)
	}

	entities, total, err := h.entities.List(c.UserContext(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list entities")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, entities))
}

// Get returns one entity with its latest score and evidence.
func (h *EntityHandler) Get(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	var entity *models.Entity
	if repositories.CacheService != nil {
		if cached, err := repositories.CacheService.GetEntity(c.UserContext(), id); err == nil && cached != nil {
			entity = cached
		}
	}
	if entity == nil {
		var err error
		entity, err = h.entities.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrEntityNotFound) {
				return response.NotFound(c, "entity not found")
			}
			return response.ServerError(c, "failed to get entity")
		}
		if repositories.CacheService != nil {
			_ = repositories.CacheService.CacheEntity(c.UserContext(), entity)
		}
	}

	payload := fiber.Map{"entity": entity}

	if score, err := h.scores.GetByEntity(c.UserContext(), id); err == nil {
		payload["risk_score"] = score
	}
	if evidence, err := h.evidences.GetByEntity(c.UserContext(), id); err == nil {
		payload["evidence"] = evidence
	}

	return c.JSON(payload)
}

// AddEvidence records a manual evidence item submitted by an analyst.
func (h *EntityHandler) AddEvidence(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	var input struct {
		Content    string  `json:"content" validate:"required"`
		Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.Struct(input); err != nil {
		return response.ValidationError(c, validation.Message(err))
	}

	if _, err := h.entities.GetByID(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrEntityNotFound) {
			return response.NotFound(c, "entity not found")
		}
		return response.ServerError(c, "failed to get entity")
	}

	item := models.Evidence{
		EntityID:   id,
		Source:     models.SourceManual,
		Content:    input.Content,
		Confidence: input.Confidence,
	}
	if err := h.evidences.Append(c.UserContext(), []models.Evidence{item}); err != nil {
		return response.ServerError(c, "failed to record evidence")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"evidence": item})
}

func entityID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
