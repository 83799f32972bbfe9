package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/fjod/go_skincare/internal/cart"
	"github.com/fjod/go_skincare/internal/catalog"
	"github.com/fjod/go_skincare/internal/config"
	h "github.com/fjod/go_skincare/internal/http"
	"github.com/fjod/go_skincare/internal/metrics"
	"github.com/fjod/go_skincare/internal/poller"
	"github.com/fjod/go_skincare/internal/search"
	"github.com/fjod/go_skincare/internal/storage"
	"github.com/fjod/go_skincare/pkg/logger"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid LOG_LEVEL", "error", err)
		os.Exit(1)
	}
	log := logger.New("storefront", level)
	slog.SetDefault(log)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx := context.Background()

	// Catalog
	cat, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "source", cfg.CatalogSource, "products", cat.Len())

	// Cart and recent search storage
	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	engine := search.New(cat,
		search.WithWorkers(cfg.SearchWorkers),
		search.WithLogger(log))
	carts := cart.NewRegistry(store,
		cart.WithStoreOptions(
			cart.WithRecorder(m),
			cart.WithLogger(log),
			cart.WithTimeout(cfg.RequestTimeout)),
		cart.WithMaxSessions(cfg.CartMaxSessions),
		cart.WithIdleTTL(cfg.CartIdleTTL))
	recent := search.NewRecentSearches(store, log)

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	go carts.RunJanitor(pollCtx, cfg.CartIdleTTL/2)

	// Checkout events clear carts
	var checkout *poller.Poller
	if len(cfg.KafkaBrokers) > 0 {
		checkout = poller.NewPoller(carts, poller.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.CheckoutTopic,
			GroupID: cfg.KafkaGroupID,
		}, m, log)
		go checkout.Run(pollCtx)
		log.Info("checkout poller started", "brokers", cfg.KafkaBrokers, "topic", cfg.CheckoutTopic)
	}

	router := h.NewRouter(h.Deps{
		Catalog:        cat,
		Engine:         engine,
		Carts:          carts,
		Recent:         recent,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	stopPolling()
	if checkout != nil {
		checkout.Close()
	}

	log.Info("server exited")
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogSource == config.CatalogJSON {
		return catalog.Load(ctx, catalog.NewJSONSource(cfg.CatalogPath))
	}

	src, err := catalog.NewSQLSource(cfg.CatalogSource, cfg.CatalogDSN)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := src.RunMigrations(cfg.MigrationsPath); err != nil {
		return nil, err
	}
	log.Info("catalog migrations completed", "path", cfg.MigrationsPath)

	return catalog.Load(ctx, src)
}

// openStorage connects the configured backend. The returned func releases
// it.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, func(), error) {
	var (
		st      storage.Storage
		closeFn = func() {}
	)

	switch cfg.StorageBackend {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Info("redis ping succeeded", "addr", cfg.RedisAddr)
		st = storage.NewRedisStorage(client, cfg.RedisTTL)
		closeFn = func() { client.Close() }

	case config.StorageMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		ms := storage.NewMongoStorage(db)
		if err := ms.CreateIndexes(ctx); err != nil {
			db.Client().Disconnect(ctx)
			return nil, nil, err
		}
		log.Info("connected to MongoDB", "uri", cfg.MongoURI, "db", cfg.MongoDBName)
		st = ms
		closeFn = func() { db.Client().Disconnect(context.Background()) }

	default:
		log.Warn("using in-memory storage, carts do not survive restarts")
		return storage.NewMemoryStorage(), closeFn, nil
	}

	if cfg.BreakerEnabled {
		st = storage.WithBreaker(st, cfg.StorageBackend, log)
	}
	return st, closeFn, nil
}
