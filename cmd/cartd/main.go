package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/packfinderz-cart/api"
	"github.com/angelmondragon/packfinderz-cart/api/routes"
	"github.com/angelmondragon/packfinderz-cart/internal/cart"
	"github.com/angelmondragon/packfinderz-cart/internal/navigation"
	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/angelmondragon/packfinderz-cart/pkg/db"
	"github.com/angelmondragon/packfinderz-cart/pkg/instance"
	"github.com/angelmondragon/packfinderz-cart/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
	"github.com/angelmondragon/packfinderz-cart/pkg/metrics"
	"github.com/angelmondragon/packfinderz-cart/pkg/migrate"
	"github.com/angelmondragon/packfinderz-cart/pkg/money"
	"github.com/angelmondragon/packfinderz-cart/pkg/redis"
	"github.com/angelmondragon/packfinderz-cart/pkg/shutdown"
)

const serviceName = "cartd"

type closer interface {
	Close() error
}

// backend is the storage the cart snapshot lives in plus whatever must be
// closed on exit.
type backend struct {
	store   kvstore.Store
	pinger  kvstore.Pinger
	closers []closer
}

func (b backend) Close() error {
	var err error
	for _, c := range b.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"storage_backend": cfg.Storage.Backend,
		"instance":        instance.GetID(),
	})

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "cartd stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(reg)

	storage, err := openBackend(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, storage.Close())
	}()

	store, err := cart.NewStore(storage.store, logg, cartMetrics, cart.Options{
		Key:         cfg.Storage.Key,
		InsertOnAdd: cfg.Storage.InsertOnAdd,
		Timeout:     cfg.Storage.Timeout,
	})
	if err != nil {
		return err
	}
	// a failed read leaves the cart empty and in memory-only mode; keep serving
	if err := store.Initialize(ctx); err != nil {
		logg.Warn(ctx, "cart started without its stored snapshot")
	}

	formatter, err := money.NewFormatter(cfg.Currency)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "currency", formatter.Code()), "cart ready")

	handler := routes.NewRouter(cfg, logg, store, storage.pinger, formatter, navigation.NewLogged(logg, cartMetrics), reg)
	return api.Serve(ctx, api.NewServer(cfg.App.Port, handler), logg)
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (backend, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return backend{}, err
		}
		store := kvstore.NewRedis(client)
		return backend{store: store, pinger: store, closers: []closer{client}}, nil

	case config.StorageBackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return backend{}, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return backend{}, multierr.Append(err, client.Close())
		}
		store := kvstore.NewSQL(client)
		return backend{store: store, pinger: store, closers: []closer{client}}, nil

	default:
		logg.Warn(ctx, "using in-memory cart storage; snapshots do not survive restarts")
		store := kvstore.NewMemory()
		return backend{store: store, pinger: store}, nil
	}
}
