package repository

import (
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Category        string
	Search          string // matches name or SKU, case-insensitive
	StockStatus     model.StockStatus
	IncludeInactive bool
}

// TransactionFilter narrows ledger listings. Zero values mean "no filter".
type TransactionFilter struct {
	Type      model.TransactionType
	ProductID *uuid.UUID
	Start     *time.Time
	End       *time.Time
	Limit     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByProductCode(code string) (*model.Product, error)
	Update(product *model.Product) error
	SoftDelete(id uuid.UUID) error

	// AdjustQuantity applies a signed delta to an active product's quantity as
	// one atomic conditional update with a >= 0 floor check. It returns
	// apperr.ErrNotFound when the product does not exist or is inactive, and
	// *apperr.InsufficientStockError when the floor check rejects the delta.
	// Concurrent callers can never both pass a stale check.
	AdjustQuantity(id uuid.UUID, delta int) (*model.Product, error)
}

// TransactionRepository is append-only: the ledger has no update or delete.
type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindAll(filter TransactionFilter) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindBetween(start, end time.Time) ([]model.Transaction, error)
	FindRecent(limit int) ([]model.Transaction, error)
}

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	Update(user *model.User) error
	Deactivate(id uuid.UUID) error
	UpdatePassword(id uuid.UUID, hashedPassword string) error
}

// Store bundles the collections behind one unit-of-work boundary. InTx runs
// fn against a transactional view of the store: everything fn writes commits
// or rolls back together. The ledger engine relies on this for its
// quantity-update-plus-ledger-append pair.
type Store interface {
	Products() ProductRepository
	Transactions() TransactionRepository
	Users() UserRepository
	InTx(fn func(Store) error) error
}
