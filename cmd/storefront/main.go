package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jafarshop/coffeeshop/internal/api"
	"github.com/jafarshop/coffeeshop/internal/backend"
	"github.com/jafarshop/coffeeshop/internal/cart"
	"github.com/jafarshop/coffeeshop/internal/config"
	"github.com/jafarshop/coffeeshop/internal/repository"
	"github.com/jafarshop/coffeeshop/internal/repository/postgres"
	"github.com/jafarshop/coffeeshop/internal/service"
	"github.com/jafarshop/coffeeshop/pkg/logger"
	"github.com/jafarshop/coffeeshop/pkg/shutdown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Storefront stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	client := backend.NewClient(cfg.Backend, log)
	syncer := cart.NewSyncer(cart.NewStore(log), client, cart.Options{
		RollbackOnFailure: cfg.Cart.RollbackOnFailure,
	}, log)

	// The backend may come up after us; the first cart view retries
	if err := syncer.Init(ctx); err != nil {
		log.Warn("Cart not initialized at startup", zap.Error(err))
	} else if _, err := syncer.FetchCart(ctx); err != nil {
		log.Warn("Initial cart fetch failed", zap.Error(err))
	}

	repos := &repository.Repositories{}
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		repos = postgres.NewRepositories(db, log)
		log.Info("Receipt storage enabled", zap.String("host", cfg.Database.Host))
	} else {
		log.Info("DB_HOST not set, receipts will not be stored")
	}

	router := api.NewRouter(cfg, api.Dependencies{
		Cart:     syncer,
		Catalog:  service.NewCatalogService(client, cfg.Catalog, log),
		Checkout: service.NewCheckoutService(syncer, repos, cfg.Checkout, log),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting storefront", zap.String("addr", srv.Addr), zap.String("backend", cfg.Backend.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return cart.NewReconciler(syncer, cfg.Cart.ReconcileInterval, log).Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
