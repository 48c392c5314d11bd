package handler

import (
	"time"

	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.LedgerService
}

func NewTransactionHandler(s service.LedgerService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// GetTransactions supports ?type=, ?product_id=, ?start_date= and ?end_date=
// (YYYY-MM-DD).
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		Type: model.TransactionType(c.Query("type")),
	}

	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.Fail(c, fiber.StatusBadRequest, "Invalid product_id filter")
		}
		filter.ProductID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.Fail(c, fiber.StatusBadRequest, "Invalid start_date, use YYYY-MM-DD")
		}
		filter.Start = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.Fail(c, fiber.StatusBadRequest, "Invalid end_date, use YYYY-MM-DD")
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond) // inclusive end of day
		filter.End = &end
	}

	transactions, err := h.service.GetTransactions(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OKCount(c, len(transactions), transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid transaction ID")
	}

	tx, err := h.service.GetTransactionByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, tx)
}

// CreateTransaction applies a stock movement through the ledger engine.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	tx, err := h.service.ApplyMovement(&req, middleware.CurrentUser(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, tx)
}
