package service

import (
	"sync"
	"testing"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *memory.Store, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Tester",
		Email:    model.NormalizeEmail(uuid.NewString() + "@example.com"),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, store.Users().Create(user))
	return user
}

func seedProduct(t *testing.T, store *memory.Store, qty, reorder int) *model.Product {
	t.Helper()
	product := &model.Product{
		ProductID:      "PRD-" + uuid.NewString()[:8],
		SKU:            "SKU-" + uuid.NewString()[:8],
		Name:           "Widget",
		Category:       "General",
		Price:          100,
		Quantity:       qty,
		OpeningBalance: qty,
		Supplier:       "Acme",
		ReorderLevel:   reorder,
		IsActive:       true,
	}
	require.NoError(t, store.Products().Create(product))
	return product
}

// signedSum reconstructs the net movement for a product from its ledger.
func signedSum(t *testing.T, store *memory.Store, productID uuid.UUID) int {
	t.Helper()
	transactions, err := store.Transactions().FindAll(repository.TransactionFilter{ProductID: &productID})
	require.NoError(t, err)
	sum := 0
	for _, tx := range transactions {
		sum += tx.Type.Signed(tx.Quantity)
	}
	return sum
}

func TestApplyMovementScenario(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleStaff)
	product := seedProduct(t, store, 0, 5)
	svc := NewLedgerService(store, nil)

	// IN 20 -> quantity 20, one ledger record
	entry, err := svc.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.TxIn, Quantity: 20,
	}, user)
	require.NoError(t, err)
	assert.Equal(t, 20, entry.Product.Quantity)
	assert.Equal(t, model.TxIn, entry.Type)
	require.NotNil(t, entry.PerformedByUser)
	assert.Equal(t, user.Email, entry.PerformedByUser.Email)

	// OUT 25 -> rejected wholesale, quantity unchanged, no new record
	_, err = svc.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.TxOut, Quantity: 25,
	}, user)
	require.Error(t, err)
	assert.True(t, apperr.IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Widget")
	assert.Contains(t, err.Error(), "25")
	assert.Contains(t, err.Error(), "20")

	current, err := store.Products().FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, current.Quantity)
	assert.Equal(t, 20, signedSum(t, store, product.ID))

	// OUT 20 -> quantity 0, status out_of_stock
	entry, err = svc.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.TxOut, Quantity: 20,
	}, user)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Product.Quantity)
	assert.Equal(t, model.StockStatusOut, entry.Product.StockStatus())
}

func TestApplyMovementValidation(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleStaff)
	product := seedProduct(t, store, 10, 2)
	svc := NewLedgerService(store, nil)

	cases := []struct {
		name string
		req  MovementRequest
	}{
		{"zero quantity", MovementRequest{ProductID: product.ID, Type: model.TxIn, Quantity: 0}},
		{"negative quantity", MovementRequest{ProductID: product.ID, Type: model.TxOut, Quantity: -3}},
		{"unknown direction", MovementRequest{ProductID: product.ID, Type: "SIDEWAYS", Quantity: 1}},
		{"nil product id", MovementRequest{Type: model.TxIn, Quantity: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ApplyMovement(&tc.req, user)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		})
	}

	// Unknown product
	_, err := svc.ApplyMovement(&MovementRequest{
		ProductID: uuid.New(), Type: model.TxIn, Quantity: 1,
	}, user)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// No movements were recorded by any of the failed attempts
	assert.Equal(t, 0, signedSum(t, store, product.ID))
}

func TestApplyMovementRejectsInactivePerformer(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleStaff)
	user.IsActive = false
	product := seedProduct(t, store, 10, 2)
	svc := NewLedgerService(store, nil)

	_, err := svc.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.TxIn, Quantity: 1,
	}, user)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestConcurrentOutMovements(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleStaff)
	product := seedProduct(t, store, 10, 0)
	svc := NewLedgerService(store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ApplyMovement(&MovementRequest{
				ProductID: product.ID, Type: model.TxOut, Quantity: 6,
			}, user)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperr.IsInsufficientStock(err))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of two concurrent OUT 6 movements must succeed")

	current, err := store.Products().FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, current.Quantity)

	transactions, err := store.Transactions().FindAll(repository.TransactionFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestLedgerConservationInvariant(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleStaff)
	product := seedProduct(t, store, 7, 3)
	svc := NewLedgerService(store, nil)

	movements := []MovementRequest{
		{ProductID: product.ID, Type: model.TxIn, Quantity: 12},
		{ProductID: product.ID, Type: model.TxOut, Quantity: 5},
		{ProductID: product.ID, Type: model.TxOut, Quantity: 100}, // rejected
		{ProductID: product.ID, Type: model.TxIn, Quantity: 1},
		{ProductID: product.ID, Type: model.TxOut, Quantity: 15},
	}
	for i := range movements {
		_, _ = svc.ApplyMovement(&movements[i], user)
	}

	current, err := store.Products().FindByID(product.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, current.Quantity, 0)
	assert.Equal(t, current.Quantity, current.OpeningBalance+signedSum(t, store, product.ID),
		"quantity must equal opening balance plus net ledger movement")
	assert.Equal(t, 0, current.Quantity) // 7 +12 -5 +1 -15
}

func TestMovementAgainstDeletedProduct(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, model.RoleAdmin)
	product := seedProduct(t, store, 10, 2)
	require.NoError(t, store.Products().SoftDelete(product.ID))

	svc := NewLedgerService(store, nil)
	_, err := svc.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.TxIn, Quantity: 1,
	}, user)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
