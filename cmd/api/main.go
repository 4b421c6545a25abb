package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-stock-tracker/internal/handler"
	"go-stock-tracker/internal/middleware"
	"go-stock-tracker/internal/repository"
	"go-stock-tracker/internal/service"
	"go-stock-tracker/internal/ws"
	"go-stock-tracker/pkg/config"
	"go-stock-tracker/pkg/database"
	"go-stock-tracker/pkg/jwt"
	"go-stock-tracker/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env + config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// 2. Setup database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// 3. Websocket hub for realtime stock updates
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency injection (wiring layers)
	tokens := jwt.NewManager(cfg.JWT)

	productRepo := repository.NewProductRepo(db)
	stockInRepo := repository.NewStockInRepo(db)
	stockOutRepo := repository.NewStockOutRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(db, productRepo, wsHub, log)
	stockService := service.NewStockService(db, productRepo, stockInRepo, stockOutRepo, wsHub, log, cfg.Stock.StrictDelete)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(userRepo, tokens, log)

	productHandler := handler.NewProductHandler(productService)
	stockHandler := handler.NewStockHandler(stockService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Everything below requires authentication
	protected := api.Group("", requireAuth)

	// Product catalog
	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Get("/products/:id", productHandler.Get)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Stock-in ledger
	protected.Get("/stock-in", stockHandler.ListStockIns)
	protected.Post("/stock-in", stockHandler.CreateStockIn)
	protected.Get("/stock-in/product/:productId", stockHandler.ListStockInsByProduct)
	protected.Put("/stock-in/:id", stockHandler.UpdateStockIn)
	protected.Delete("/stock-in/:id", stockHandler.DeleteStockIn)

	// Stock-out ledger
	protected.Get("/stock-out", stockHandler.ListStockOuts)
	protected.Post("/stock-out", stockHandler.CreateStockOut)
	protected.Get("/stock-out/product/:productId", stockHandler.ListStockOutsByProduct)
	protected.Put("/stock-out/:id", stockHandler.UpdateStockOut)
	protected.Delete("/stock-out/:id", stockHandler.DeleteStockOut)

	// Reports (read-only)
	protected.Get("/reports/stock-movement", reportHandler.StockMovement)
	protected.Get("/reports/current-stock", reportHandler.CurrentStock)

	// Websocket stock feed
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

	// 6. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
