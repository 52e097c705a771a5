package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
	"sentra/internal/services/network"
	"sentra/internal/utils/response"
)

type NetworkHandler struct {
	entities repositories.EntityRepository
	txs      repositories.TransactionRepository
	scores   repositories.RiskScoreRepository
}

func NewNetworkHandler(
	entities repositories.EntityRepository,
	txs repositories.TransactionRepository,
	scores repositories.RiskScoreRepository,
) *NetworkHandler {
	return &NetworkHandler{entities: entities, txs: txs, scores: scores}
}

// Graph returns the full transaction network with risk scores attached
// to the nodes, ready for visualization.
func (h *NetworkHandler) Graph(c *fiber.Ctx) error {
	entities, err := h.entities.ListAll(c.UserContext())
	if err != nil {
		return response.ServerError(c, "failed to load entities")
	}
	txs, err := h.txs.ListAll(c.UserContext())
	if err != nil {
		return response.ServerError(c, "failed to load transactions")
	}
	scores, err := h.scores.GetLatestScores(c.UserContext())
	if err != nil {
		return response.ServerError(c, "failed to load scores")
	}

	return c.JSON(network.BuildGraph(entities, txs, scores))
}
