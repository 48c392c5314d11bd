package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository/memory"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	issuer *jwt.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	issuer := jwt.NewIssuer("test-secret", time.Hour)

	router := &Router{
		Auth:         NewAuthHandler(service.NewAuthService(store, issuer)),
		Products:     NewProductHandler(service.NewProductService(store, nil)),
		Transactions: NewTransactionHandler(service.NewLedgerService(store, nil)),
		Dashboard:    NewDashboardHandler(service.NewDashboardService(store)),
		Users:        NewUserHandler(service.NewUserService(store)),
		UserRepo:     store.Users(),
		Issuer:       issuer,
	}

	app := fiber.New()
	router.Setup(app)
	return &testEnv{app: app, store: store, issuer: issuer}
}

func (e *testEnv) seedUser(t *testing.T, role model.Role) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Name:     "Tester " + string(role),
		Email:    model.NormalizeEmail(uuid.NewString() + "@example.com"),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, e.store.Users().Create(user))

	token, err := e.issuer.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) seedProduct(t *testing.T, qty int) *model.Product {
	t.Helper()
	product := &model.Product{
		ProductID:      "PRD-" + uuid.NewString()[:8],
		SKU:            "SKU-" + uuid.NewString()[:8],
		Name:           "Widget",
		Category:       "General",
		Price:          250,
		Quantity:       qty,
		OpeningBalance: qty,
		Supplier:       "Acme",
		ReorderLevel:   5,
		IsActive:       true,
	}
	require.NoError(t, e.store.Products().Create(product))
	return product
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp, envelope
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestDeactivatedIdentityIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, model.RoleAdmin)
	require.NoError(t, env.store.Users().Deactivate(user.ID))

	resp, _ := env.request(t, http.MethodGet, "/api/v1/products", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownRouteReturnsEnvelope404(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.request(t, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProductDeleteRoleGating(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)
	_, staffToken := env.seedUser(t, model.RoleStaff)
	_, managerToken := env.seedUser(t, model.RoleManager)
	_, adminToken := env.seedUser(t, model.RoleAdmin)

	path := "/api/v1/products/" + product.ID.String()

	resp, _ := env.request(t, http.MethodDelete, path, staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.request(t, http.MethodDelete, path, managerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.request(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Soft-deleted: gone from the listing, still queryable by id.
	resp, body := env.request(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_active"])

	resp, body = env.request(t, http.MethodGet, "/api/v1/products", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"].(float64))
}

func TestStaffCannotCreateProductButManagerCan(t *testing.T) {
	env := newTestEnv(t)
	_, staffToken := env.seedUser(t, model.RoleStaff)
	_, managerToken := env.seedUser(t, model.RoleManager)

	payload := map[string]interface{}{
		"product_id": "prd-100",
		"sku":        "sku-100",
		"name":       "Gadget",
		"category":   "Electronics",
		"price":      500,
		"quantity":   8,
		"supplier":   "Acme",
	}

	resp, _ := env.request(t, http.MethodPost, "/api/v1/products", staffToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.request(t, http.MethodPost, "/api/v1/products", managerToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "PRD-100", data["product_id"])
	assert.Equal(t, "SKU-100", data["sku"])
	assert.Equal(t, float64(8), data["opening_balance"])
	assert.Equal(t, "in_stock", data["stock_status"])
}

func TestAnyAuthenticatedIdentityMayRecordMovements(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)
	_, staffToken := env.seedUser(t, model.RoleStaff)

	resp, body := env.request(t, http.MethodPost, "/api/v1/transactions", staffToken, map[string]interface{}{
		"product_id": product.ID,
		"type":       "OUT",
		"quantity":   4,
		"note":       "order #42",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "OUT", data["type"])
	assert.Equal(t, float64(4), data["quantity"])

	// Embedded product reference is resolved for display.
	embedded := data["product"].(map[string]interface{})
	assert.Equal(t, float64(6), embedded["quantity"])
}

func TestInsufficientStockNamesQuantities(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 3)
	_, token := env.seedUser(t, model.RoleStaff)

	resp, body := env.request(t, http.MethodPost, "/api/v1/transactions", token, map[string]interface{}{
		"product_id": product.ID,
		"type":       "OUT",
		"quantity":   9,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	message := body["message"].(string)
	assert.Contains(t, message, "Widget")
	assert.Contains(t, message, "9")
	assert.Contains(t, message, "3")
}

func TestDashboardOverview(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, 0)  // out of stock
	env.seedProduct(t, 3)  // low (reorder level 5)
	env.seedProduct(t, 50) // in stock
	_, token := env.seedUser(t, model.RoleStaff)

	resp, body := env.request(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, float64(3), data["total_products"])
	assert.Equal(t, float64(2), data["low_stock_count"], "low stock includes out of stock")
	assert.Equal(t, float64(1), data["out_of_stock_count"])
	assert.Equal(t, float64(250*(3+50)), data["total_stock_value"])
}

func TestSevenDayTrendEndpointZeroFills(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, model.RoleStaff)

	resp, body := env.request(t, http.MethodGet, "/api/v1/dashboard/trend", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := body["data"].([]interface{})
	require.Len(t, days, 7)
	for _, d := range days {
		day := d.(map[string]interface{})
		assert.Equal(t, float64(0), day["stock_in"])
		assert.Equal(t, float64(0), day["stock_out"])
	}
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, managerToken := env.seedUser(t, model.RoleManager)
	_, adminToken := env.seedUser(t, model.RoleAdmin)

	resp, _ := env.request(t, http.MethodGet, "/api/v1/users", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.request(t, http.MethodPost, "/api/v1/users", adminToken, map[string]interface{}{
		"name":     "New Manager",
		"email":    "manager2@example.com",
		"password": "password",
		"role":     "manager",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "manager", data["role"])
}

func TestRegisterThenLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Newcomer",
		"email":    "new@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "staff", user["role"], "self-registration is pinned to staff")

	resp, body = env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "new@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]interface{})["token"].(string)

	resp, body = env.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]interface{})
	assert.Equal(t, "new@example.com", me["email"])
}

func TestProductUpdateCannotTouchQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, 10)
	_, managerToken := env.seedUser(t, model.RoleManager)

	resp, body := env.request(t, http.MethodPut, "/api/v1/products/"+product.ID.String(), managerToken, map[string]interface{}{
		"name":          "Renamed Widget",
		"category":      "General",
		"price":         300,
		"supplier":      "Acme",
		"reorder_level": 2,
		"quantity":      9999, // ignored: quantity only moves through the ledger
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, fmt.Sprintf("body: %v", body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Renamed Widget", data["name"])
	assert.Equal(t, float64(10), data["quantity"])
}
