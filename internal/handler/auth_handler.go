package handler

import (
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles self-service registration. The new identity is always
// staff; elevated roles go through the admin user management endpoints.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, result)
}

// Me returns the authenticated identity.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, fiber.StatusUnauthorized, "Missing authorization token")
	}
	return response.OK(c, user.ToResponse())
}
