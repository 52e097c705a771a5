package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sentra/internal/repositories"
	"sentra/internal/utils/pagination"
	"sentra/internal/utils/response"
)

type TransactionHandler struct {
	txs repositories.TransactionRepository
}

func NewTransactionHandler(txs repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{txs: txs}
}

// ListByEntity returns an entity's transactions, newest first.
func (h *TransactionHandler) ListByEntity(c *fiber.Ctx) error {
	id, err := entityID(c)
	if err != nil {
		return response.BadRequest(c, "invalid entity id")
	}

	p := pagination.ParseFromRequest(c)
	txs, total, err := h.txs.GetByEntityPaged(c.UserContext(), id, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list transactions")
	}
	p.Total = total
	return c.JSON(pagination.Response(p, txs))
}
