package service

import (
	"time"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/validator"

	"github.com/google/uuid"
)

// Broadcaster pushes stock events to connected clients. Nil is allowed.
type Broadcaster interface {
	BroadcastJSON(v interface{})
}

// MovementRequest describes one requested stock movement.
type MovementRequest struct {
	ProductID uuid.UUID             `json:"product_id" validate:"uuid_required"`
	Type      model.TransactionType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
	Note      string                `json:"note"`
}

// LedgerService is the only path by which a product's quantity changes after
// creation. Every successful movement leaves exactly one ledger record.
type LedgerService interface {
	ApplyMovement(req *MovementRequest, performedBy *model.User) (*model.Transaction, error)
	GetTransactions(filter repository.TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type ledgerService struct {
	store repository.Store
	hub   Broadcaster
}

func NewLedgerService(store repository.Store, hub Broadcaster) LedgerService {
	return &ledgerService{store: store, hub: hub}
}

// ApplyMovement validates the movement, applies it to the product's quantity
// and appends the ledger record, all inside one store transaction. The
// quantity adjustment is a single conditional update with a >= 0 floor, so
// two concurrent OUT movements can never both pass against a stale read.
func (s *ledgerService) ApplyMovement(req *MovementRequest, performedBy *model.User) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidArgumentf("field %s failed on %s", first.FailedField, first.Tag)
	}
	if performedBy == nil || !performedBy.IsActive {
		return nil, apperr.ErrUnauthenticated
	}

	var entry *model.Transaction
	err := s.store.InTx(func(tx repository.Store) error {
		product, err := tx.Products().AdjustQuantity(req.ProductID, req.Type.Signed(req.Quantity))
		if err != nil {
			return err
		}

		entry = &model.Transaction{
			ProductID:         req.ProductID,
			Type:              req.Type,
			Quantity:          req.Quantity,
			Note:              req.Note,
			PerformedByUserID: performedBy.ID,
			TransactionDate:   time.Now(),
		}
		if err := tx.Transactions().Create(entry); err != nil {
			return err
		}

		// Resolve references so callers get a display-ready record without a
		// second round trip.
		entry.Product = *product
		performer := *performedBy
		entry.PerformedByUser = &performer
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "movement_applied",
			"transaction": map[string]interface{}{
				"id":         entry.ID,
				"type":       entry.Type,
				"quantity":   entry.Quantity,
				"product_id": entry.ProductID,
				"new_stock":  entry.Product.Quantity,
			},
			"user": map[string]interface{}{
				"id":    performedBy.ID,
				"name":  performedBy.Name,
				"email": performedBy.Email,
			},
		})
	}

	return entry, nil
}

func (s *ledgerService) GetTransactions(filter repository.TransactionFilter) ([]model.Transaction, error) {
	return s.store.Transactions().FindAll(filter)
}

func (s *ledgerService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.store.Transactions().FindByID(id)
}
