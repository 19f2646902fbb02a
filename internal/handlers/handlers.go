// Package handlers exposes the prediction engine over HTTP.
package handlers

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// EventQueue defines the interface for the player update worker pool
type EventQueue interface {
	Enqueue(event *models.PlayerUpdatedEvent) bool
	QueueDepth() int
}

// Pinger is a dependency the readiness probe checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// Database is the part of the Postgres pool the handlers use
type Database interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Config struct {
	Engine     logic.PredictionService
	WorkerPool EventQueue
	Postgres   Database
	ClickHouse driver.Conn
	Cache      Pinger // nil when the in-process cache is used
	Logger     *zap.Logger

	AdminToken    string
	MigrationsDir string
}

type Handler struct {
	engine        logic.PredictionService
	pool          EventQueue
	pg            Database
	ch            driver.Conn
	cache         Pinger
	logger        *zap.SugaredLogger
	validate      *validator.Validate
	adminToken    string
	migrationsDir string
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dir := cfg.MigrationsDir
	if dir == "" {
		dir = "migrations"
	}
	return &Handler{
		engine:        cfg.Engine,
		pool:          cfg.WorkerPool,
		pg:            cfg.Postgres,
		ch:            cfg.ClickHouse,
		cache:         cfg.Cache,
		logger:        logger.Sugar(),
		validate:      validator.New(),
		adminToken:    cfg.AdminToken,
		migrationsDir: dir,
	}
}
