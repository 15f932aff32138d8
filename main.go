package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/aggregate"
	"github.com/aljaz-ferenc/budget-app/config"
	"github.com/aljaz-ferenc/budget-app/events"
	"github.com/aljaz-ferenc/budget-app/handlers"
	"github.com/aljaz-ferenc/budget-app/logger"
	"github.com/aljaz-ferenc/budget-app/middleware"
	"github.com/aljaz-ferenc/budget-app/mongodb"
	"github.com/aljaz-ferenc/budget-app/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := logger.Init(cfg.Development, cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mongodb.InitMongoDB(initCtx, cfg.MongoURI, cfg.MongoDatabase); err != nil {
		logger.Get().Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	defer mongodb.CloseMongoDB()

	middleware.JWTSecret = cfg.JWTSecret
	middleware.TokenTTL = cfg.TokenTTL
	seedBlacklist(initCtx)

	handlers.Aggregator = aggregate.NewBuilder(mongodb.Users{}, mongodb.Transactions{})
	handlers.Hub = events.NewHub()

	sweeper := &worker.Sweeper{
		Interval: cfg.SweepInterval,
		Grace:    cfg.SweepGrace,
		Sweep:    mongodb.SweepOrphanedTransactions,
	}
	go sweeper.Run(ctx)

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/auto-login", middleware.AuthMiddleware, handlers.AutoLogin)
			auth.POST("/logout", middleware.AuthMiddleware, handlers.Logout)
		}

		transactions := api.Group("/transactions", middleware.AuthMiddleware)
		{
			transactions.POST("", handlers.CreateTransaction)
			transactions.DELETE("", handlers.DeleteTransaction)
			transactions.GET("/user/:userId", handlers.GetTransactionsByUser)
			transactions.GET("/:transactionId", handlers.GetTransaction)
			transactions.PATCH("/:transactionId", handlers.UpdateTransaction)
		}

		users := api.Group("/users", middleware.AuthMiddleware)
		{
			users.PATCH("", handlers.UpdateUser)
			users.POST("/budgets", handlers.AddBudget)
			users.DELETE("/budgets", handlers.DeleteBudget)
			users.POST("/savings", handlers.AddSaving)
			users.PATCH("/savings", handlers.UpdateSaving)
			users.DELETE("/savings", handlers.DeleteSaving)
		}

		api.GET("/ws", middleware.AuthMiddleware, handlers.HandleWebSocket)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Get().Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Get().Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// seedBlacklist reloads persisted revocations so a restart does not silently
// un-invalidate logged-out tokens.
func seedBlacklist(ctx context.Context) {
	revocations, err := mongodb.LoadActiveRevocations(ctx)
	if err != nil {
		logger.Get().Warn("failed to load persisted revocations", zap.Error(err))
		return
	}
	for _, r := range revocations {
		middleware.RevokedTokens.Revoke(r.Token, r.ExpiresAt)
	}
	if len(revocations) > 0 {
		logger.Get().Info("seeded token blacklist", zap.Int("revocations", len(revocations)))
	}
}
