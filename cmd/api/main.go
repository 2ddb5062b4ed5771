package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"solar-proposal/internal/api"
	"solar-proposal/internal/api/middleware"
	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"
	"solar-proposal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs", "Path to config.yaml or the directory holding it")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Active pricing: the configured file, or the built-in sheet.
	pricing := model.DefaultPricing()
	source := "default"
	if cfg.Pricing.File != "" {
		f, err := config.LoadPricing(cfg.Pricing.File)
		if err != nil {
			logger.Fatal("Failed to load pricing file", zap.Error(err), zap.String("path", cfg.Pricing.File))
		}
		pricing, source = f.Pricing, "file:"+f.Name
	}
	holder := config.NewPricingHolder(pricing, source)
	logger.Info("Pricing loaded", zap.String("source", source))

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open project store", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer st.Close()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	router := api.NewRouter(api.Deps{
		Engine:         simulation.New(),
		Pricing:        holder,
		Store:          st,
		Logger:         logger,
		PresetsDir:     cfg.Pricing.PresetsDir,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		StaticDir:      staticDir,
		RateLimiter:    limiter,
		Cache:          simulation.NewResultCache(cfg.Cache.TTL, cfg.Cache.MaxEntries),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during HTTP server shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
