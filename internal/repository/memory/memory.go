// Package memory implements repository.Store entirely in process. It exists
// so services and handlers can be exercised without a live Postgres; the
// semantics mirror the gorm implementations, including the atomic
// floor-checked quantity adjustment.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	// Slices keep insertion order deterministic for stable-sort guarantees.
	products     []*model.Product
	transactions []*model.Transaction
	users        []*model.User
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepo{s: s}
}

func (s *Store) Transactions() repository.TransactionRepository {
	return &transactionRepo{s: s}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{s: s}
}

// InTx serializes callers. The individual operations are already atomic under
// the store mutex, so the ledger's conditional adjustment cannot interleave
// with a competing movement; there is no rollback of writes fn already made.
func (s *Store) InTx(fn func(repository.Store) error) error {
	return fn(s)
}

func stamp(b *model.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// ---- products ----

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return apperr.Conflictf("sku %s already exists", product.SKU)
		}
		if p.ProductID == product.ProductID {
			return apperr.Conflictf("product code %s already exists", product.ProductID)
		}
	}
	stamp(&product.BaseModel)
	clone := *product
	r.s.products = append(r.s.products, &clone)
	return nil
}

func (r *productRepo) FindAll(filter repository.ProductFilter) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Product
	for _, p := range r.s.products {
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.SKU), needle) {
				continue
			}
		}
		if filter.StockStatus != "" && p.StockStatus() != filter.StockStatus {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findLocked(id)
}

func (r *productRepo) findLocked(id uuid.UUID) (*model.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFoundf("product %s", id)
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFoundf("product with sku %s", sku)
}

func (r *productRepo) FindByProductCode(code string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ProductID == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFoundf("product with code %s", code)
}

func (r *productRepo) Update(product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.products {
		if p.ID == product.ID {
			product.UpdatedAt = time.Now()
			clone := *product
			r.s.products[i] = &clone
			return nil
		}
	}
	return apperr.NotFoundf("product %s", product.ID)
}

func (r *productRepo) SoftDelete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == id {
			p.IsActive = false
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.NotFoundf("product %s", id)
}

func (r *productRepo) AdjustQuantity(id uuid.UUID, delta int) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID != id || !p.IsActive {
			continue
		}
		if p.Quantity+delta < 0 {
			return nil, &apperr.InsufficientStockError{
				ProductName: p.Name,
				Requested:   -delta,
				Available:   p.Quantity,
			}
		}
		p.Quantity += delta
		p.UpdatedAt = time.Now()
		clone := *p
		return &clone, nil
	}
	return nil, apperr.NotFoundf("product %s", id)
}

// ---- transactions ----

type transactionRepo struct {
	s *Store
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&tx.BaseModel)
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = tx.CreatedAt
	}
	clone := *tx
	r.s.transactions = append(r.s.transactions, &clone)
	return nil
}

func (r *transactionRepo) resolveLocked(tx model.Transaction) model.Transaction {
	for _, p := range r.s.products {
		if p.ID == tx.ProductID {
			tx.Product = *p
			break
		}
	}
	for _, u := range r.s.users {
		if u.ID == tx.PerformedByUserID {
			clone := *u
			tx.PerformedByUser = &clone
			break
		}
	}
	return tx
}

func (r *transactionRepo) FindAll(filter repository.TransactionFilter) ([]model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Transaction
	for _, tx := range r.s.transactions {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.ProductID != nil && tx.ProductID != *filter.ProductID {
			continue
		}
		if filter.Start != nil && tx.TransactionDate.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && tx.TransactionDate.After(*filter.End) {
			continue
		}
		out = append(out, r.resolveLocked(*tx))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tx := range r.s.transactions {
		if tx.ID == id {
			resolved := r.resolveLocked(*tx)
			return &resolved, nil
		}
	}
	return nil, apperr.NotFoundf("transaction %s", id)
}

func (r *transactionRepo) FindBetween(start, end time.Time) ([]model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Transaction
	for _, tx := range r.s.transactions {
		if tx.TransactionDate.Before(start) || tx.TransactionDate.After(end) {
			continue
		}
		out = append(out, *tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.Before(out[j].TransactionDate)
	})
	return out, nil
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	return r.FindAll(repository.TransactionFilter{Limit: limit})
}

// ---- users ----

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperr.Conflictf("email %s already exists", user.Email)
		}
	}
	stamp(&user.BaseModel)
	clone := *user
	r.s.users = append(r.s.users, &clone)
	return nil
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	normalized := model.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == normalized {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFoundf("user with email %s", email)
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFoundf("user %s", id)
}

func (r *userRepo) FindAll() ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *userRepo) Update(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			clone := *user
			r.s.users[i] = &clone
			return nil
		}
	}
	return apperr.NotFoundf("user %s", user.ID)
}

func (r *userRepo) Deactivate(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			u.IsActive = false
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.NotFoundf("user %s", id)
}

func (r *userRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			u.Password = hashedPassword
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.NotFoundf("user %s", id)
}
