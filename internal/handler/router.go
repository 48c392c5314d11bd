package handler

import (
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Router wires the API surface onto a fiber app. Kept out of main so tests
// can stand up the full surface against an in-memory store.
type Router struct {
	Auth         *AuthHandler
	Products     *ProductHandler
	Transactions *TransactionHandler
	Dashboard    *DashboardHandler
	Users        *UserHandler
	AI           *AIHandler

	UserRepo repository.UserRepository
	Issuer   *jwt.Issuer
}

func (r *Router) Setup(app *fiber.App) {
	api := app.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", r.Auth.Register)
	auth.Post("/login", r.Auth.Login)

	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(r.UserRepo, r.Issuer))

	protected.Get("/auth/me", r.Auth.Me)

	// Dashboard and reports (any authenticated identity)
	protected.Get("/dashboard", r.Dashboard.GetOverview)
	protected.Get("/dashboard/trend", r.Dashboard.GetTrend)
	protected.Get("/reports/summary", r.Dashboard.GetReportSummary)

	// Products (mutations are role-gated)
	protected.Get("/products", r.Products.GetProducts)
	protected.Get("/products/:id", r.Products.GetProduct)
	protected.Post("/products", middleware.RequirePermission(model.PermProductWrite), r.Products.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePermission(model.PermProductWrite), r.Products.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePermission(model.PermProductDelete), r.Products.DeleteProduct)

	// Transactions (any authenticated identity may record movements)
	protected.Get("/transactions", r.Transactions.GetTransactions)
	protected.Get("/transactions/:id", r.Transactions.GetTransaction)
	protected.Post("/transactions", r.Transactions.CreateTransaction)

	// User management (admin only)
	users := protected.Group("/users", middleware.RequirePermission(model.PermUserManage))
	users.Get("/", r.Users.GetUsers)
	users.Get("/:id", r.Users.GetUser)
	users.Post("/", r.Users.CreateUser)
	users.Put("/:id", r.Users.UpdateUser)
	users.Delete("/:id", r.Users.DeleteUser)

	// AI assistant proxy
	if r.AI != nil {
		protected.Post("/ai/ask", r.AI.Ask)
	}

	// Fallback for unknown routes
	app.Use(func(c *fiber.Ctx) error {
		return response.Fail(c, fiber.StatusNotFound, "Route not found")
	})
}
