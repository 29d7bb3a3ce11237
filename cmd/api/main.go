package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/config"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
	"github.com/bimakw/wallet-console/internal/infrastructure/cache"
	"github.com/bimakw/wallet-console/internal/infrastructure/ethereum"
	"github.com/bimakw/wallet-console/internal/infrastructure/moralis"
	"github.com/bimakw/wallet-console/internal/presentation/handlers"
	"github.com/bimakw/wallet-console/internal/presentation/middleware"
)

// sessionStore is a SessionStore that can report its health
type sessionStore interface {
	repositories.SessionStore
	handlers.HealthChecker
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	logger.Info("Starting wallet-console API",
		zap.Int("port", cfg.API.Port),
		zap.String("session_store", cfg.API.SessionStore),
	)

	// Indexing API client
	chainData, err := moralis.Start(cfg.Moralis, logger)
	if err != nil {
		logger.Fatal("Failed to start indexing API client", zap.Error(err))
	}
	defer moralis.Stop()

	// Session store
	var store sessionStore
	switch cfg.API.SessionStore {
	case "redis":
		redisStore, err := cache.NewRedisSessionStore(cfg.Redis, cfg.API.SessionTTL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = cache.NewMemorySessionStore(cfg.API.SessionTTL)
	}

	// Optional wallet provider, only reported in health checks since
	// browser sessions bring their own account
	var walletChecker handlers.HealthChecker
	if cfg.Wallet.RPCURL != "" {
		provider, err := ethereum.NewWalletProvider(context.Background(), cfg.Wallet, logger)
		if err != nil {
			logger.Warn("Failed to connect to wallet provider", zap.Error(err))
		} else {
			defer provider.Close()
			walletChecker = provider
		}
	}

	// Create services
	clock := clockwork.NewRealClock()
	dataService := services.NewWalletDataService(chainData, clock, logger)
	registry := services.NewSessionRegistry(store, dataService, clock, cfg.Console.Debounce, cfg.API.SessionTTL, logger)
	defer registry.Close()

	// Create handlers
	sessionHandler := handlers.NewSessionHandler(registry, logger)
	walletHandler := handlers.NewWalletHandler(dataService, logger)
	configHandler := handlers.NewConfigHandler(cfg.Wallet, cfg.Console)
	healthHandler := handlers.NewHealthHandler(store, chainData, walletChecker)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))
		configHandler.RegisterRoutes(r)
		sessionHandler.RegisterRoutes(r)
		walletHandler.RegisterRoutes(r)
	})

	// Start server
	addr := cfg.API.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func setupLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
