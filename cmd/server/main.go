package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credvault-backend/internal/api"
	"credvault-backend/internal/config"
	"credvault-backend/internal/core"
	"credvault-backend/internal/crypto"
	"credvault-backend/internal/db"
	"credvault-backend/internal/middleware"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	cipher, err := crypto.NewCipherFromBase64(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("failed to initialize cipher", zap.Error(err))
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	database := client.Database(cfg.MongoDatabase)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	ownerRepo := db.NewMongoOwnerRepository(database)
	projectRepo := db.NewMongoProjectRepository(database, cipher)

	authService := core.NewAuthService(ownerRepo)
	projectService := core.NewProjectService(projectRepo)

	authMW, err := middleware.NewAuthMiddleware(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("failed to initialize auth middleware", zap.Error(err))
	}

	authHandler := api.NewAuthHandler(authService, authMW, logger)
	projectHandler := api.NewProjectHandler(projectService, logger)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	if cfg.ClientURL != "" {
		router.Use(middleware.CORS(cfg.ClientURL))
	}

	api.SetupRouter(router, authHandler, projectHandler, authMW)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
