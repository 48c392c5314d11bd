package handler

import (
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts supports ?category=, ?search= (name or SKU) and ?stock_status=.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		StockStatus: model.StockStatus(c.Query("stock_status")),
	}

	products, err := h.service.GetProducts(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OKCount(c, len(products), products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	created, err := h.service.CreateProduct(&product, middleware.CurrentUser(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, created.ToResponse())
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, updated.ToResponse())
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return response.Error(c, err)
	}
	return response.OKMessage(c, "Product deleted successfully")
}
