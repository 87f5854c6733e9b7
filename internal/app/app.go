// Package app wires the sync engine together and runs the widget daemon.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Moazzam-Sonu/premier-whishList/internal/cache"
	"github.com/Moazzam-Sonu/premier-whishList/internal/client"
	"github.com/Moazzam-Sonu/premier-whishList/internal/config"
	"github.com/Moazzam-Sonu/premier-whishList/internal/controller"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gateway"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gueststore"
	handler "github.com/Moazzam-Sonu/premier-whishList/internal/handler/http"
	"github.com/Moazzam-Sonu/premier-whishList/internal/registry"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/health"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/httpclient"
)

// controllerFactory builds controllers over the shared engine components.
type controllerFactory struct {
	wishlists *cache.WishlistCache
	products  *cache.ProductCache
	guests    gueststore.Store
	gateway   *gateway.Gateway
	logger    *slog.Logger
}

func (f *controllerFactory) Button(cfg domain.WidgetConfig) *controller.Button {
	view := logButtonView{logger: f.logger.With(
		slog.String("widget", "button"),
		slog.String("product_id", cfg.ProductID),
		slog.String("variant_id", cfg.VariantID),
	)}
	return controller.NewButton(cfg, f.wishlists, f.guests, f.gateway, view, f.logger)
}

func (f *controllerFactory) Page(cfg domain.WidgetConfig) *controller.Page {
	view := logPageView{logger: f.logger.With(slog.String("widget", "page"))}
	return controller.NewPage(cfg, f.wishlists, f.products, f.guests, f.gateway, view, f.logger)
}

// App wires together all dependencies and runs the widget daemon.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	registry   *registry.Registry
	source     *registry.FileSource
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Guest store backend.
	var guests gueststore.Store
	var rdb *redis.Client
	switch cfg.GuestStoreBackend {
	case config.GuestStoreRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		guests = gueststore.NewRedisStore(rdb, cfg.GuestStoreKey)
	default:
		guests = gueststore.NewFileStore(cfg.GuestStorePath)
		logger.Info("using file guest store", slog.String("path", cfg.GuestStorePath))
	}

	// Remote wishlist service client and the shared caches over it.
	api := client.New(httpclient.New(httpclient.DefaultConfig()), cfg.APIBaseURL, cfg.ShopDomain, logger)
	wishlists := cache.NewWishlistCache(api.List, logger)
	products := cache.NewProductCache(api.ProductDetail, logger)
	gw := gateway.New(api, wishlists, guests, logger)

	factory := &controllerFactory{
		wishlists: wishlists,
		products:  products,
		guests:    guests,
		gateway:   gw,
		logger:    logger,
	}
	reg := registry.New(factory, logger)

	if err := os.MkdirAll(cfg.MarkerDir, 0o755); err != nil {
		return nil, fmt.Errorf("create marker dir: %w", err)
	}
	source := registry.NewFileSource(cfg.MarkerDir, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("marker-dir", func(ctx context.Context) error {
		_, err := os.Stat(cfg.MarkerDir)
		return err
	})
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	router := handler.NewRouter(reg, healthHandler, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		registry:   reg,
		source:     source,
		httpServer: httpServer,
	}, nil
}

// Run starts the marker watcher and the diagnostics server, blocking until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("starting diagnostics server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		a.logger.Info("watching marker directory",
			slog.String("dir", a.cfg.MarkerDir),
		)
		if err := a.registry.Run(ctx, a.source); err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("marker registry: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
