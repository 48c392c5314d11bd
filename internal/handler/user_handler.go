package handler

import (
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetUsers()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OKCount(c, len(users), users)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, user)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	user, err := h.service.CreateUser(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	user, err := h.service.UpdateUser(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, user)
}

// DeleteUser deactivates the identity; the record is kept.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.service.DeactivateUser(id); err != nil {
		return response.Error(c, err)
	}
	return response.OKMessage(c, "User deactivated")
}
