package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pitchconnect/analytics-api/internal/cache"
	"github.com/pitchconnect/analytics-api/internal/config"
	"github.com/pitchconnect/analytics-api/internal/handlers"
	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/store"
	"github.com/pitchconnect/analytics-api/internal/worker"
)

const (
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	connectTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, logger); err != nil {
		sugar.Fatalw("Server exited", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, ch, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()
	defer ch.Close()

	// Cache: Redis when configured, otherwise the in-process store
	var (
		assessments logic.Cache
		cachePinger handlers.Pinger
		memory      *cache.Memory
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		rc := cache.NewRedis(rdb, cache.RedisConfig{
			Prefix:          "pitch:",
			BreakerTimeout:  cfg.CacheBreakerTimeout,
			BreakerFailures: uint32(cfg.CacheBreakerFailures),
			Logger:          logger,
		})
		if err := rc.Ping(ctx); err != nil {
			sugar.Warnw("Redis not reachable at startup, cache calls will be bypassed until it recovers", "error", err)
		}
		assessments, cachePinger = rc, rc
	} else {
		memory = cache.NewMemory()
		assessments = memory
		sugar.Infow("REDIS_URL not set, using in-process cache")
	}

	snapshots := store.NewSnapshotStore(store.Config{
		Postgres:     pg,
		ClickHouse:   store.NewMatches(ch),
		Logger:       logger,
		MatchHistory: cfg.MatchHistory,
	})

	engine := logic.NewEngine(logic.EngineConfig{
		Store:            snapshots,
		Cache:            assessments,
		Logger:           logger,
		BatchConcurrency: cfg.BatchConcurrency,
	})

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Invalidator:   engine,
		Matches:       store.NewMatches(ch),
		Logger:        logger,
	})
	pool.Start(ctx)

	h := handlers.New(handlers.Config{
		Engine:     engine,
		WorkerPool: pool,
		Postgres:   pg,
		ClickHouse: ch,
		Cache:      cachePinger,
		Logger:     logger,
		AdminToken: cfg.AdminToken,
	})

	limiter := handlers.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	go housekeeping(ctx, cfg.CacheSweepInterval, memory, limiter, sugar)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: h.Routes(handlers.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
			Limiter:        limiter,
		}),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting HTTP server", "addr", srv.Addr, "env", cfg.Env, "modelVersion", logic.ModelVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		sugar.Info("Shutting down server...")
	case err := <-errCh:
		pool.Stop()
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}

	// Drain queued invalidations once no new requests arrive
	pool.Stop()
	sugar.Info("Server stopped")
	return nil
}

// connect opens the Postgres pool and the ClickHouse connection
func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, driver.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pg.Ping(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("parse clickhouse url: %w", err)
	}
	ch, err := clickhouse.Open(opts)
	if err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("connect clickhouse: %w", err)
	}
	if err := ch.Ping(ctx); err != nil {
		pg.Close()
		ch.Close()
		return nil, nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return pg, ch, nil
}

// housekeeping sweeps expired cache entries and idle rate limiter clients
func housekeeping(ctx context.Context, every time.Duration, memory *cache.Memory, limiter *handlers.RateLimiter, logger *zap.SugaredLogger) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept := 0
			if memory != nil {
				swept = memory.Sweep()
			}
			pruned := limiter.Prune()
			if swept > 0 || pruned > 0 {
				logger.Debugw("Housekeeping", "cacheEntriesSwept", swept, "rateLimitClientsPruned", pruned)
			}
		}
	}
}
