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

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/database"
	"theatre-box-office/internal/middleware"
	"theatre-box-office/internal/repositories"
	"theatre-box-office/internal/server"
	"theatre-box-office/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.NewConnection(connectCtx, database.FromConfig(cfg.Database))
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connection established")

	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
	if !cfg.IsDevelopment() {
		// the storefront calls the API cross-site with credentials
		sessionStore.Options.SameSite = http.SameSiteNoneMode
	}

	storage, err := services.NewStorageService(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	catalogRepo := repositories.NewCatalogRepository(db.DB)
	doorListRepo := repositories.NewDoorListRepository(db.DB)

	catalogService := services.NewCatalogService(catalogRepo, storage)
	payments := services.NewPaymentService(cfg.Stripe, logger)
	checkoutService := services.NewCheckoutService(payments, cfg.Checkout, logger)
	imageService := services.NewPlayImageService(storage, catalogRepo, logger)

	checkoutLimiter := middleware.NewRateLimiter(20, time.Minute)
	defer checkoutLimiter.Stop()

	deps := server.Dependencies{
		Catalog:      catalogService,
		Checkout:     checkoutService,
		DoorList:     doorListRepo,
		Images:       imageService,
		Sessions:     sessionStore,
		DB:           db,
		Logger:       logger,
		CORSOrigins:  []string{cfg.Storefront.Origin},
		StaffHash:    cfg.DoorList.TokenHash,
		CheckoutRate: checkoutLimiter,
	}
	if fallback, ok := storage.(*services.FallbackStorageService); ok {
		deps.UploadDir = fallback.BasePath()
	}
	if cfg.DoorList.TokenHash == "" {
		logger.Warn("door list is not protected; set DOORLIST_TOKEN_HASH")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
