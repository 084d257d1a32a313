package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi"
	"github.com/KirkDiggler/wynn-optimizer/internal/config"
	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/wynn-optimizer/internal/pkg/logger"
	"github.com/KirkDiggler/wynn-optimizer/internal/redis"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/catalogcache"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/lease"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/results"
	"github.com/KirkDiggler/wynn-optimizer/internal/services/catalog"
)

// app holds the wired dependencies of one CLI invocation
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	redis   redis.Client
	api     wynnapi.Client
	catalog catalog.Service
	orch    optimizer.Service
	metrics *metricsServer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: log}

	if cfg.Redis.Addr != "" {
		rc, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			DB:         cfg.Redis.DB,
			Password:   cfg.Redis.Password,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		if err := redis.Ping(ctx, rc, 2*time.Second); err != nil {
			_ = rc.Close()
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
		}
		a.redis = rc
	}

	a.api, err = wynnapi.New(&wynnapi.Config{
		BaseURL:           cfg.Catalog.BaseURL,
		HTTPTimeout:       cfg.Catalog.Timeout,
		RequestsPerMinute: cfg.Catalog.RequestsPerMinute,
		MaxRetries:        cfg.Catalog.MaxRetries,
		Logger:            log,
	})
	if err != nil {
		return nil, err
	}
	source := a.api
	if cfg.Catalog.SnapshotPath != "" {
		snapshot, err := wynnapi.NewFile(cfg.Catalog.SnapshotPath)
		if err != nil {
			return nil, err
		}
		source = wynnapi.NewFallback(log, a.api, snapshot)
	}

	catalogCfg := &catalog.Config{
		Source: source,
		TTL:    cfg.Catalog.CacheTTL,
		Logger: log,
	}
	if a.redis != nil {
		catalogCfg.Cache, err = catalogcache.NewRedis(&catalogcache.Config{Client: a.redis})
		if err != nil {
			return nil, err
		}
	}
	a.catalog, err = catalog.New(catalogCfg)
	if err != nil {
		return nil, err
	}

	store, err := a.resultStore()
	if err != nil {
		return nil, err
	}

	orchCfg := &optimizer.Config{
		Catalog:  a.catalog,
		Results:  store,
		LeaseTTL: cfg.Lease.TTL,
		Workers:  cfg.Optimizer.Workers,
		Logger:   log,
	}
	if a.redis != nil {
		orchCfg.Leases, err = lease.NewRedis(&lease.Config{Client: a.redis})
		if err != nil {
			return nil, err
		}
	}
	a.orch, err = optimizer.New(orchCfg)
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Addr != "" {
		a.metrics = startMetricsServer(cfg.Metrics.Addr, a.redis, log)
	}
	return a, nil
}

func (a *app) resultStore() (results.Store, error) {
	if a.cfg.Results.Backend == results.BackendRedis {
		return results.NewRedis(&results.RedisConfig{Client: a.redis})
	}
	return results.NewFile(&results.FileConfig{Dir: a.cfg.Results.Dir})
}

func (a *app) close() {
	if a.metrics != nil {
		a.metrics.shutdown(5 * time.Second)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.logger.Sync()
}

// signalContext is cancelled on SIGINT or SIGTERM so runs stop and rank what
// they have
func signalContext(log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received shutdown signal, ranking partial results", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}
