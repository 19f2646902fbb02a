// Package worker implements the buffered worker pool for player update events.
// Ingest handlers enqueue without blocking; workers drain the queue in batches,
// append new appearances to the match history and clear cached assessments.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// Invalidation pipeline metrics
var (
	eventsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_invalidation_events_accepted_total",
		Help: "Total number of player update events accepted",
	})

	eventsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_invalidation_events_applied_total",
		Help: "Total number of player update events processed by workers",
	})

	eventsErrored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_invalidation_events_failed_total",
		Help: "Total number of player update events that failed processing",
	})

	queueDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pitch_invalidation_queue_depth",
		Help: "Player updates waiting to be applied",
	})

	batchFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pitch_invalidation_flush_duration_seconds",
		Help:    "Time to record and invalidate one batch",
		Buckets: prometheus.DefBuckets,
	})

	eventsShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitch_invalidation_events_shed_total",
		Help: "Player updates rejected because the queue was full or closed",
	})
)

// Invalidator clears every cached assessment of a player
type Invalidator interface {
	Invalidate(ctx context.Context, playerID string) error
}

// MatchRecorder appends appearances to a player's match history
type MatchRecorder interface {
	Record(ctx context.Context, playerID string, matches []models.MatchPerformance) error
}

// Job is one accepted player update
type Job struct {
	Event     *models.PlayerUpdatedEvent
	Timestamp time.Time
}

// PoolConfig sizes the pool and names its collaborators
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	FlushTimeout  time.Duration
	Invalidator   Invalidator
	Matches       MatchRecorder // optional; nil skips history writes
	Logger        *zap.Logger
}

// Pool drains player updates in batches and invalidates their cached assessments
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool applies defaults; call Start before Enqueue
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start runs the workers until Stop or ctx cancellation
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("invalidation pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue, waits for workers to flush what is left and returns
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Info("draining invalidation queue")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("invalidation pool stopped")
}

// Enqueue adds an event to the queue without blocking. It returns false when
// the queue is full or the pool is stopped; the event is shed.
func (p *Pool) Enqueue(event *models.PlayerUpdatedEvent) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		eventsShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Event: event, Timestamp: time.Now()}:
		eventsAccepted.Inc()
		return true
	default:
		p.logger.Warnw("Worker queue full, dropping event", "player", event.PlayerID, "kind", event.Kind)
		eventsShed.Inc()
		return false
	}
}

// QueueDepth reports pending updates
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker flushes on batch size, on the ticker and when the queue closes
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("invalidation batch failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			eventsErrored.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("invalidation batch applied", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			eventsApplied.Add(float64(len(batch)))
		}
		batchFlushDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes new appearances then clears the cache once per player.
// Duplicate events for one player inside a batch collapse to one invalidation.
func (p *Pool) processBatch(batch []Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.FlushTimeout)
	defer cancel()

	var (
		order   []string
		seen    = make(map[string]bool, len(batch))
		matches = make(map[string][]models.MatchPerformance)
	)
	for _, job := range batch {
		id := job.Event.PlayerID
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
		if job.Event.Match != nil {
			matches[id] = append(matches[id], *job.Event.Match)
		}
	}

	var errs []error
	if p.config.Matches != nil {
		for _, id := range order {
			if len(matches[id]) == 0 {
				continue
			}
			if err := p.config.Matches.Record(ctx, id, matches[id]); err != nil {
				errs = append(errs, fmt.Errorf("record matches for %s: %w", id, err))
			}
		}
	}

	// Invalidate even when a write failed so nothing stale outlives the event
	for _, id := range order {
		if err := p.config.Invalidator.Invalidate(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

// reportQueueDepth periodically updates the queue depth metric
func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepthGauge.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
