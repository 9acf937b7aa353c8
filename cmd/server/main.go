package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/router"
	"github.com/loopline/backend/pkg/config"
	"github.com/loopline/backend/pkg/logging"
	"github.com/loopline/backend/pkg/token"
	"github.com/loopline/backend/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logging.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.GetLogger()
	defer logger.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, cfg, tokens); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
