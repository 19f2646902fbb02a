package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// ModelVersion is stamped on every assessment
const ModelVersion = "2.3.0"

const defaultBatchConcurrency = 8

// flightTimeout bounds a shared computation once detached from its caller
const flightTimeout = 30 * time.Second

// Feature names used for cache keys and metrics
const (
	featureInjury      = "injury"
	featurePerformance = "performance"
	featureValue       = "value"
	featureCompare     = "compare"
)

// EngineConfig holds the engine's collaborators
type EngineConfig struct {
	Store  SnapshotStore
	Cache  Cache // optional; nil computes every request
	Logger *zap.Logger
	// Now overrides the clock in tests
	Now func() time.Time
	// BatchConcurrency bounds per-player work inside team operations
	BatchConcurrency int
}

// Engine runs the predictors behind a compute-or-serve-cached policy
type Engine struct {
	store       SnapshotStore
	cache       Cache
	logger      *zap.SugaredLogger
	now         func() time.Time
	concurrency int
	flight      singleflight.Group
}

// NewEngine wires an engine from its config
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &Engine{
		store:       cfg.Store,
		cache:       cfg.Cache,
		logger:      logger.Sugar(),
		now:         now,
		concurrency: concurrency,
	}
}

var _ PredictionService = (*Engine)(nil)

func injuryKey(playerID string) string { return featureInjury + ":" + playerID }

func performanceKey(playerID string, h models.Horizon) string {
	return featurePerformance + ":" + playerID + ":" + string(h)
}

func valueKey(playerID, currency string) string {
	return featureValue + ":" + playerID + ":" + currency
}

// compareKey orders the ids so (A,B) and (B,A) share one entry
func compareKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return featureCompare + ":" + ids[0] + ":" + ids[1]
}

// generationKey holds a player's current comparison generation. Invalidate
// replaces it, which orphans every comparison cached under the old one.
func generationKey(playerID string) string { return "generation:" + playerID }

// generationTTL outlives every comparison written under a generation
const generationTTL = 24 * compareTTL

// comparisonKey is compareKey qualified by both players' generations
func (e *Engine) comparisonKey(ctx context.Context, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return compareKey(a, b) + "@" + e.generation(ctx, a) + ":" + e.generation(ctx, b)
}

// generation reads a player's comparison generation; "0" until first invalidated
func (e *Engine) generation(ctx context.Context, playerID string) string {
	if e.cache == nil {
		return "0"
	}
	raw, ok, err := e.cache.Get(ctx, generationKey(playerID))
	if err != nil {
		cacheErrors.WithLabelValues("get").Inc()
		e.logger.Warnw("Cache read failed, using base generation", "player", playerID, "error", fmt.Errorf("%w: %v", ErrCacheUnavailable, err))
		return "0"
	}
	if !ok || len(raw) == 0 {
		return "0"
	}
	return string(raw)
}

// assessment is satisfied by pointers to every assessment type
type assessment[T any] interface {
	*T
	Meta() *models.AssessmentMeta
	Expired(now time.Time) bool
}

type flightResult[T any] struct {
	value  *T
	cached bool
}

// serve returns a cached assessment or computes, stamps and stores one.
// Concurrent callers for the same key share one computation; only the caller
// that ran it reports a cache miss.
func serve[T any, PT assessment[T]](ctx context.Context, e *Engine, feature, key string, ttl time.Duration, compute func(context.Context) (*T, error)) (*models.Envelope[T], error) {
	start := time.Now()

	if e.cache == nil {
		v, err := timed(ctx, feature, compute)
		if err != nil {
			return nil, err
		}
		e.stamp(PT(v).Meta(), ttl)
		return envelope(v, false, start), nil
	}

	if v, ok := lookup[T, PT](ctx, e, key); ok {
		cacheHits.WithLabelValues(feature).Inc()
		return envelope(v, true, start), nil
	}

	ran := false
	res, err, _ := e.flight.Do(key, func() (interface{}, error) {
		ran = true
		// Detached from the caller; every waiter shares the result
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		// A caller that just finished may have stored the key
		if v, ok := lookup[T, PT](fctx, e, key); ok {
			return flightResult[T]{value: v, cached: true}, nil
		}
		v, err := timed(fctx, feature, compute)
		if err != nil {
			return nil, err
		}
		e.stamp(PT(v).Meta(), ttl)
		e.put(fctx, key, v, ttl)
		return flightResult[T]{value: v}, nil
	})
	if err != nil {
		return nil, err
	}
	out := res.(flightResult[T])
	hit := out.cached || !ran
	if hit {
		cacheHits.WithLabelValues(feature).Inc()
	} else {
		cacheMisses.WithLabelValues(feature).Inc()
	}
	return envelope(out.value, hit, start), nil
}

func timed[T any](ctx context.Context, feature string, compute func(context.Context) (*T, error)) (*T, error) {
	start := time.Now()
	v, err := compute(ctx)
	computeDuration.WithLabelValues(feature).Observe(time.Since(start).Seconds())
	return v, err
}

// lookup reads and decodes a cached assessment. Failures and expired entries
// count as misses.
func lookup[T any, PT assessment[T]](ctx context.Context, e *Engine, key string) (*T, bool) {
	raw, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		cacheErrors.WithLabelValues("get").Inc()
		e.logger.Warnw("Cache read failed, computing directly", "key", key, "error", fmt.Errorf("%w: %v", ErrCacheUnavailable, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		e.logger.Warnw("Discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}
	if PT(v).Expired(e.now()) {
		return nil, false
	}
	return v, true
}

func (e *Engine) put(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		e.logger.Errorw("Failed to encode assessment", "key", key, "error", err)
		return
	}
	if err := e.cache.Set(ctx, key, raw, ttl); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		e.logger.Warnw("Cache write failed", "key", key, "error", fmt.Errorf("%w: %v", ErrCacheUnavailable, err))
	}
}

func (e *Engine) stamp(meta *models.AssessmentMeta, ttl time.Duration) {
	now := e.now()
	meta.AssessmentID = uuid.NewString()
	meta.GeneratedAt = now
	meta.ValidUntil = now.Add(ttl)
	meta.ModelVersion = ModelVersion
}

func envelope[T any](v *T, hit bool, start time.Time) *models.Envelope[T] {
	return &models.Envelope[T]{
		Data: v,
		Meta: responseMeta(hit, start),
	}
}

func responseMeta(hit bool, start time.Time) models.ResponseMeta {
	return models.ResponseMeta{
		GeneratedAt:      time.Now().UTC(),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		CacheHit:         hit,
		ModelVersion:     ModelVersion,
	}
}

// load fetches a snapshot and resolves its sport profile and summary
func (e *Engine) load(ctx context.Context, playerID string) (*models.PlayerSnapshot, *registry.Profile, WorkloadSummary, error) {
	s, err := e.store.GetPlayerSnapshot(ctx, playerID)
	if err != nil {
		return nil, nil, WorkloadSummary{}, fmt.Errorf("load player %s: %w", playerID, err)
	}
	profile, err := registry.Get(s.Sport)
	if err != nil {
		return nil, nil, WorkloadSummary{}, fmt.Errorf("%w: %v", ErrUnsupportedSport, err)
	}
	return s, profile, Aggregate(s, e.now()), nil
}

// batch runs one per-player operation over a team roster with bounded
// concurrency. Player failures are collected, never fatal.
func batch[T any](ctx context.Context, e *Engine, feature, teamID string, one func(context.Context, string) (*models.Envelope[T], error)) (*models.BatchResult[T], error) {
	start := time.Now()
	roster, err := e.store.GetTeamRoster(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load team %s: %w", teamID, err)
	}

	envelopes := make([]*models.Envelope[T], len(roster))
	errs := make([]error, len(roster))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, playerID := range roster {
		g.Go(func() error {
			envelopes[i], errs[i] = one(ctx, playerID)
			return nil
		})
	}
	_ = g.Wait()

	result := &models.BatchResult[T]{
		TeamID:    teamID,
		Successes: make([]*models.Envelope[T], 0, len(roster)),
		Errors:    []models.PlayerError{},
	}
	allCached := len(roster) > 0
	for i, playerID := range roster {
		if errs[i] != nil {
			batchFailures.WithLabelValues(feature).Inc()
			e.logger.Warnw("Player failed inside team batch", "team", teamID, "player", playerID, "feature", feature, "error", errs[i])
			result.Errors = append(result.Errors, models.PlayerError{PlayerID: playerID, Error: errs[i].Error()})
			allCached = false
			continue
		}
		allCached = allCached && envelopes[i].Meta.CacheHit
		result.Successes = append(result.Successes, envelopes[i])
	}
	result.Meta = responseMeta(allCached, start)
	return result, nil
}

// Invalidate drops every cache entry for a player. Per-player keys are deleted;
// comparisons are orphaned by moving the player to a new generation.
func (e *Engine) Invalidate(ctx context.Context, playerID string) error {
	if e.cache == nil {
		return nil
	}
	keys := []string{injuryKey(playerID)}
	for _, h := range models.AllHorizons {
		keys = append(keys, performanceKey(playerID, h))
	}
	for _, c := range SupportedCurrencies() {
		keys = append(keys, valueKey(playerID, c))
	}
	if err := e.cache.Delete(ctx, keys...); err != nil {
		cacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("invalidate %s: %w: %v", playerID, ErrCacheUnavailable, err)
	}
	if err := e.cache.Set(ctx, generationKey(playerID), []byte(uuid.NewString()), generationTTL); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("invalidate %s comparisons: %w: %v", playerID, ErrCacheUnavailable, err)
	}
	return nil
}
