package service

import (
	"time"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/validator"

	"github.com/google/uuid"
)

// UpdateProductRequest lists the directly editable fields. Quantity is
// deliberately absent: after creation it changes only through the ledger.
type UpdateProductRequest struct {
	Name         string     `json:"name" validate:"required"`
	Category     string     `json:"category" validate:"required"`
	Price        int64      `json:"price" validate:"gte=0"`
	Supplier     string     `json:"supplier" validate:"required"`
	ReorderLevel int        `json:"reorder_level" validate:"gte=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Description  string     `json:"description"`
}

type ProductService interface {
	CreateProduct(req *model.Product, createdBy *model.User) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProducts(filter repository.ProductFilter) ([]model.ProductResponse, error)
	GetProductByID(id uuid.UUID) (*model.ProductResponse, error)
}

type productService struct {
	store repository.Store
	hub   Broadcaster
}

func NewProductService(store repository.Store, hub Broadcaster) ProductService {
	return &productService{store: store, hub: hub}
}

// CreateProduct records the initial quantity as the product's opening
// balance. The opening balance is not a ledger entry: the conservation
// invariant is quantity == opening balance + sum of signed movements.
func (s *productService) CreateProduct(req *model.Product, createdBy *model.User) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}
	if req.Quantity < 0 || req.Price < 0 || req.ReorderLevel < 0 {
		return nil, apperr.InvalidArgumentf("quantity, price and reorder_level must not be negative")
	}

	req.Normalize()

	if existing, _ := s.store.Products().FindBySKU(req.SKU); existing != nil {
		return nil, apperr.Conflictf("sku %s already exists", req.SKU)
	}
	if existing, _ := s.store.Products().FindByProductCode(req.ProductID); existing != nil {
		return nil, apperr.Conflictf("product code %s already exists", req.ProductID)
	}

	req.IsActive = true
	req.OpeningBalance = req.Quantity
	if createdBy != nil {
		id := createdBy.ID.String()
		req.CreatedByUserID = &id
	}

	if err := s.store.Products().Create(req); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "product_created",
			"product": map[string]interface{}{
				"id":       req.ID,
				"sku":      req.SKU,
				"name":     req.Name,
				"quantity": req.Quantity,
			},
		})
	}

	return req, nil
}

// UpdateProduct edits catalog fields only; the quantity is untouchable here.
func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}

	existing, err := s.store.Products().FindByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Supplier = req.Supplier
	existing.ReorderLevel = req.ReorderLevel
	existing.ExpiryDate = req.ExpiryDate
	existing.Description = req.Description

	if err := s.store.Products().Update(existing); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "product_updated",
			"product": map[string]interface{}{
				"id":   existing.ID,
				"sku":  existing.SKU,
				"name": existing.Name,
			},
		})
	}

	return existing, nil
}

// DeleteProduct clears the active flag. The record and its ledger history
// remain queryable.
func (s *productService) DeleteProduct(id uuid.UUID) error {
	return s.store.Products().SoftDelete(id)
}

func (s *productService) GetProducts(filter repository.ProductFilter) ([]model.ProductResponse, error) {
	products, err := s.store.Products().FindAll(filter)
	if err != nil {
		return nil, err
	}
	out := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out, nil
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.ProductResponse, error) {
	product, err := s.store.Products().FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := product.ToResponse()
	return &resp, nil
}
