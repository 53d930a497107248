package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bespokesol/catalog/internal/api"
	"github.com/bespokesol/catalog/internal/auth"
	"github.com/bespokesol/catalog/internal/config"
	"github.com/bespokesol/catalog/internal/metrics"
	"github.com/bespokesol/catalog/internal/repository"
	"github.com/bespokesol/catalog/internal/service"
	"github.com/nhalm/canonlog"
	"github.com/nhalm/pgxkit"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the server on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind the server to")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("HOST", serveCmd.Flags().Lookup("host"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	canonlog.SetupGlobalLogger(cfg.LogLevel, cfg.LogFormat)
	logger := slog.Default()
	metrics.Init()

	ctx := context.Background()
	db := pgxkit.NewDB()
	if err := db.Connect(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Shutdown(ctx) }()

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	var collectionStore service.SharedCollectionStore = repository.NewSharedCollectionRepository(db)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()

		cache := repository.NewSharedCollectionCache(rdb, cfg.CollectionCacheTTL)
		collectionStore = repository.NewCachedSharedCollectionStore(collectionStore, cache, logger)
		logger.Info("shared collection cache enabled", "ttl", cfg.CollectionCacheTTL)
	}

	// Services
	productSvc := service.NewProductService(productRepo, userRepo, userRepo, mediaRepo, logger)
	categorySvc := service.NewCategoryService(categoryRepo)
	mediaSvc := service.NewMediaService(mediaRepo, productRepo)
	userSvc := service.NewUserService(userRepo, tokens)
	collectionSvc := service.NewSharedCollectionService(collectionStore, productRepo, userRepo, mediaRepo, logger)

	// Handler
	handler := api.NewHandler(api.Services{
		Products:    productSvc,
		Categories:  categorySvc,
		Media:       mediaSvc,
		Users:       userSvc,
		Collections: collectionSvc,
		Tokens:      tokens,
	})

	routeConfig := api.RouteConfig{
		ReadRPS:        cfg.ReadRPS,
		WriteRPS:       cfg.WriteRPS,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:           addr,
		Handler:        handler.RoutesWithConfig(routeConfig),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1048576,
	}

	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
