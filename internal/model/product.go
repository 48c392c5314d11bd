package model

import (
	"strings"
	"time"
)

// StockStatus is derived from quantity vs reorder level, never stored.
type StockStatus string

const (
	StockStatusOut StockStatus = "out_of_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusIn  StockStatus = "in_stock"
)

type Product struct {
	BaseModel
	ProductID    string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"product_id" validate:"required"`
	SKU          string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string     `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price        int64      `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	Quantity     int        `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Supplier     string     `gorm:"type:varchar(255);not null" json:"supplier" validate:"required"`
	ReorderLevel int        `gorm:"not null;default:10" json:"reorder_level" validate:"gte=0"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Description  string     `gorm:"type:text" json:"description"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	// Quantity at creation time. Movements are recorded relative to it, so
	// Quantity == OpeningBalance + sum of signed transaction quantities.
	OpeningBalance int `gorm:"not null;default:0" json:"opening_balance"`

	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// Normalize uppercases the business code and SKU, matching how they are stored.
func (p *Product) Normalize() {
	p.ProductID = strings.ToUpper(strings.TrimSpace(p.ProductID))
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
}

// StockStatus classifies the current quantity against the reorder level.
// Low stock includes out of stock; callers wanting the strict set subtract it.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity <= p.ReorderLevel:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ProductResponse carries the derived stock status alongside the record.
type ProductResponse struct {
	Product
	StockStatus StockStatus `json:"stock_status"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{Product: *p, StockStatus: p.StockStatus()}
}
