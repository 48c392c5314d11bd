package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-inventory-ledger/internal/ai"
	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	response.Debug = cfg.IsDevelopment()
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// 2. Setup database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Transaction{}); err != nil {
		logrus.WithError(err).Fatal("failed to migrate schema")
	}

	store := repository.NewStore(db)

	// 3. Seed bootstrap admin
	seedAdmin(store, cfg)

	// 4. Setup WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	ledgerService := service.NewLedgerService(store, wsHub)
	productService := service.NewProductService(store, wsHub)
	dashService := service.NewDashboardService(store)
	authService := service.NewAuthService(store, issuer)
	userService := service.NewUserService(store)
	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AITimeout)

	router := &handler.Router{
		Auth:         handler.NewAuthHandler(authService),
		Products:     handler.NewProductHandler(productService),
		Transactions: handler.NewTransactionHandler(ledgerService),
		Dashboard:    handler.NewDashboardHandler(dashService),
		Users:        handler.NewUserHandler(userService),
		AI:           handler.NewAIHandler(aiClient),
		UserRepo:     store.Users(),
		Issuer:       issuer,
	}

	// 6. Setup fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Ledger API v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// WebSocket route must be registered before the router installs its
	// catch-all 404 handler.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Routes
	router.Setup(app)

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}
	logrus.Info("server exited")
}

// seedAdmin provisions the bootstrap admin identity if it does not exist yet.
func seedAdmin(store repository.Store, cfg *config.Config) {
	email := model.NormalizeEmail(cfg.AdminEmail)
	if _, err := store.Users().FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Name:     cfg.AdminName,
		Email:    email,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		logrus.WithError(err).Warn("failed to hash admin password")
		return
	}
	if err := store.Users().Create(admin); err != nil {
		logrus.WithError(err).Warn("failed to create admin user")
		return
	}
	logrus.WithField("email", email).Info("bootstrap admin created")
}
