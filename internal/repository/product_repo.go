package repository

import (
	"errors"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	query := r.db.Preload("CreatedByUser")
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	var products []model.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	// Stock status is derived, so it is filtered after the query.
	if filter.StockStatus == "" {
		return products, nil
	}
	filtered := products[:0]
	for _, p := range products {
		if p.StockStatus() == filter.StockStatus {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("CreatedByUser").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("product %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("product with sku %s", sku)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByProductCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "product_id = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("product with code %s", code)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// SoftDelete clears the active flag; the record stays queryable by id so
// historical transactions keep a valid reference.
func (r *productRepo) SoftDelete(id uuid.UUID) error {
	res := r.db.Model(&model.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("product %s", id)
	}
	return nil
}

// AdjustQuantity delegates the floor check to the database: the WHERE clause
// makes check and update one statement, so two concurrent OUT movements can
// never both read the same stale quantity.
func (r *productRepo) AdjustQuantity(id uuid.UUID, delta int) (*model.Product, error) {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND is_active = ? AND quantity + ? >= 0", id, true, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Distinguish a missing product from a rejected movement.
		var product model.Product
		err := r.db.First(&product, "id = ? AND is_active = ?", id, true).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product %s", id)
		}
		if err != nil {
			return nil, err
		}
		return nil, &apperr.InsufficientStockError{
			ProductName: product.Name,
			Requested:   -delta,
			Available:   product.Quantity,
		}
	}

	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
