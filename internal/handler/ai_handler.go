package handler

import (
	"strings"

	"go-inventory-ledger/internal/ai"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	client *ai.Client
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

type askRequest struct {
	Message string `json:"message"`
}

// Ask forwards a natural-language inventory question to the AI service,
// passing along the caller's bearer token.
// POST /api/v1/ai/ask
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if strings.TrimSpace(req.Message) == "" {
		return response.Fail(c, fiber.StatusBadRequest, "Message is required")
	}

	token := ""
	if parts := strings.Split(c.Get("Authorization"), " "); len(parts) == 2 {
		token = parts[1]
	}

	answer, err := h.client.Ask(c.Context(), req.Message, token)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, answer)
}
