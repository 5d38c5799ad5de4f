package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shopswift/internal/catalog"
	"shopswift/internal/config"
	"shopswift/internal/db"
	"shopswift/internal/enhancer"
	"shopswift/internal/httpserver"
	"shopswift/internal/importer"
	"shopswift/internal/kv"
	"shopswift/internal/logging"
	"shopswift/internal/migrate"
	"shopswift/internal/orderevents"
	"shopswift/internal/service/checkout"
	"shopswift/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("api")

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	products, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	publisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	sessions := session.New(storage,
		session.WithIdleTTL(cfg.SessionIdleTTL),
		session.WithMaxSessions(cfg.SessionMax),
		session.WithLogger(logger),
	)
	go sessions.Run(ctx, time.Minute)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:        products,
		Sessions:       sessions,
		Checkout:       checkout.New(publisher, checkout.WithLogger(logger)),
		Enhancer:       enhancer.FromConfig(cfg, logger),
		Storage:        storage,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return nil
	}
	logger.Info("server stopped")
	return nil
}

// openStorage returns the session backend selected by SESSION_BACKEND.
func openStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (kv.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory session storage; users are forgotten on restart")
		return kv.NewMemory(), func() {}, nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, logger.Named("db"))
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		return kv.NewPostgres(pool, logger), pool.Close, nil
	case config.BackendRedis:
		client, err := kv.DialRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(client, kv.DefaultRedisNamespace, logger), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
}

func loadCatalog(cfg config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.NewBuiltin(catalog.WithLogger(logger)), nil
	}
	f, err := os.Open(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	products, err := importer.ReadProducts(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", cfg.CatalogFile, err)
	}
	c := catalog.New(nil, catalog.WithLogger(logger))
	for _, p := range products {
		if _, err := c.Upsert(context.Background(), p); err != nil {
			return nil, err
		}
	}
	logger.Info("catalog loaded", zap.String("file", cfg.CatalogFile), zap.Int("products", len(products)))
	return c, nil
}

func openPublisher(cfg config.Config, logger *zap.Logger) (orderevents.Publisher, error) {
	if cfg.RabbitMQURI == "" {
		return orderevents.Nop{}, nil
	}
	p, err := orderevents.DialAMQP(cfg.RabbitMQURI, cfg.OrdersQueue, logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}
