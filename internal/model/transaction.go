package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Valid reports whether t is a known movement direction.
func (t TransactionType) Valid() bool {
	return t == TxIn || t == TxOut
}

// Signed returns qty with the direction's sign applied.
func (t TransactionType) Signed(qty int) int {
	if t == TxOut {
		return -qty
	}
	return qty
}

// Transaction is an immutable ledger entry recording one stock movement.
// Repositories expose no update or delete for it.
type Transaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product         `json:"product" validate:"-"`
	Type      TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Note      string          `gorm:"type:text" json:"note"`

	PerformedByUserID uuid.UUID `gorm:"type:uuid;not null" json:"performed_by_user_id"`
	PerformedByUser   *User     `gorm:"foreignKey:PerformedByUserID" json:"performed_by_user,omitempty"`

	// Server-assigned at apply time; defaults to creation time.
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
}
