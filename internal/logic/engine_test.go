package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pitchconnect/analytics-api/internal/models"
)

func newTestEngine(store SnapshotStore, cache Cache) *Engine {
	return NewEngine(EngineConfig{
		Store:  store,
		Cache:  cache,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return testNow },
	})
}

func TestEngine_MarketValueServedFromCache(t *testing.T) {
	store := storeOf(steadyStriker(7.0))
	e := newTestEngine(store, newMockCache())
	ctx := context.Background()

	first, err := e.CalculateMarketValue(ctx, "p1", "GBP")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := e.CalculateMarketValue(ctx, "p1", "gbp")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if first.Meta.CacheHit {
		t.Error("first call reported a cache hit")
	}
	if !second.Meta.CacheHit {
		t.Error("second call did not report a cache hit")
	}
	if store.SnapshotCalls.Load() != 1 {
		t.Errorf("snapshot fetched %d times, want 1", store.SnapshotCalls.Load())
	}
	a, _ := json.Marshal(first.Data)
	b, _ := json.Marshal(second.Data)
	if string(a) != string(b) {
		t.Errorf("payloads differ:\n%s\n%s", a, b)
	}
	if first.Data.ModelVersion != ModelVersion || first.Data.AssessmentID == "" {
		t.Errorf("assessment not stamped: %+v", first.Data.AssessmentMeta)
	}
	if !first.Data.ValidUntil.Equal(testNow.Add(valueTTL)) {
		t.Errorf("ValidUntil = %v, want %v", first.Data.ValidUntil, testNow.Add(valueTTL))
	}
}

func TestEngine_ConcurrentCallsComputeOnce(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store := &MockStore{
		GetPlayerSnapshotFunc: func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
			once.Do(func() { close(entered) })
			<-release
			return steadyStriker(7.0), nil
		},
	}
	e := newTestEngine(store, newMockCache())

	results := make([]*models.Envelope[models.MarketValueAssessment], 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = e.CalculateMarketValue(context.Background(), "p1", "GBP")
	}()
	<-entered
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = e.CalculateMarketValue(context.Background(), "p1", "GBP")
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if store.SnapshotCalls.Load() != 1 {
		t.Errorf("snapshot fetched %d times, want 1", store.SnapshotCalls.Load())
	}
	if results[0].Meta.CacheHit || !results[1].Meta.CacheHit {
		t.Errorf("cache hits = %v/%v, want false/true", results[0].Meta.CacheHit, results[1].Meta.CacheHit)
	}
	a, _ := json.Marshal(results[0].Data)
	b, _ := json.Marshal(results[1].Data)
	if string(a) != string(b) {
		t.Errorf("payloads differ:\n%s\n%s", a, b)
	}
}

func TestEngine_CanceledCallerDoesNotFailWaiters(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store := &MockStore{
		GetPlayerSnapshotFunc: func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
			once.Do(func() { close(entered) })
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return steadyStriker(7.0), nil
		},
	}
	e := newTestEngine(store, newMockCache())

	first, cancel := context.WithCancel(context.Background())
	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = e.PredictInjuryRisk(first, "p1")
	}()
	<-entered
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = e.PredictInjuryRisk(context.Background(), "p1")
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("call %d failed: %v", i, err)
		}
	}
}

func TestEngine_ExpiredEntryIsRecomputed(t *testing.T) {
	store := storeOf(footballPlayer("p1"))
	cache := newMockCache()
	now := testNow
	e := NewEngine(EngineConfig{Store: store, Cache: cache, Logger: zap.NewNop(), Now: func() time.Time { return now }})
	ctx := context.Background()

	if _, err := e.PredictInjuryRisk(ctx, "p1"); err != nil {
		t.Fatalf("PredictInjuryRisk failed: %v", err)
	}
	now = testNow.Add(injuryTTL)
	got, err := e.PredictInjuryRisk(ctx, "p1")
	if err != nil {
		t.Fatalf("PredictInjuryRisk failed: %v", err)
	}
	if got.Meta.CacheHit {
		t.Error("expired entry served as a cache hit")
	}
	if store.SnapshotCalls.Load() != 2 {
		t.Errorf("snapshot fetched %d times, want 2", store.SnapshotCalls.Load())
	}
}

func TestEngine_Errors(t *testing.T) {
	upstream := &MockStore{
		GetPlayerSnapshotFunc: func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
			return nil, fmt.Errorf("%w: connection refused", ErrUpstreamUnavailable)
		},
	}
	tests := []struct {
		name  string
		store SnapshotStore
		call  func(e *Engine) error
		want  error
	}{
		{
			name:  "PlayerNotFound",
			store: storeOf(),
			call: func(e *Engine) error {
				_, err := e.PredictInjuryRisk(context.Background(), "ghost")
				return err
			},
			want: ErrPlayerNotFound,
		},
		{
			name:  "UpstreamUnavailable",
			store: upstream,
			call: func(e *Engine) error {
				_, err := e.PredictPerformance(context.Background(), "p1", models.HorizonNextMatch)
				return err
			},
			want: ErrUpstreamUnavailable,
		},
		{
			name:  "InvalidHorizon",
			store: storeOf(footballPlayer("p1")),
			call: func(e *Engine) error {
				_, err := e.PredictPerformance(context.Background(), "p1", "DECADE")
				return err
			},
			want: ErrInvalidHorizon,
		},
		{
			name:  "UnsupportedCurrency",
			store: storeOf(footballPlayer("p1")),
			call: func(e *Engine) error {
				_, err := e.CalculateMarketValue(context.Background(), "p1", "XYZ")
				return err
			},
			want: ErrUnsupportedCurrency,
		},
		{
			name: "MismatchedSports",
			store: func() SnapshotStore {
				b := footballPlayer("b")
				b.Sport = models.SportRugby
				return storeOf(footballPlayer("a"), b)
			}(),
			call: func(e *Engine) error {
				_, err := e.ComparePlayers(context.Background(), "a", "b")
				return err
			},
			want: ErrInvalidComparison,
		},
		{
			name:  "SelfComparison",
			store: storeOf(footballPlayer("a")),
			call: func(e *Engine) error {
				_, err := e.ComparePlayers(context.Background(), "a", "a")
				return err
			},
			want: ErrInvalidComparison,
		},
		{
			name:  "TeamNotFound",
			store: storeOf(),
			call: func(e *Engine) error {
				_, err := e.TeamInjuryRisk(context.Background(), "nobody")
				return err
			},
			want: ErrTeamNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(newTestEngine(tt.store, newMockCache()))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEngine_CacheFailureFallsBackToCompute(t *testing.T) {
	cache := newMockCache()
	cache.Err = errors.New("dial tcp: connection refused")
	store := storeOf(footballPlayer("p1"))
	e := newTestEngine(store, cache)

	for i := 0; i < 2; i++ {
		got, err := e.PredictInjuryRisk(context.Background(), "p1")
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if got.Meta.CacheHit {
			t.Errorf("call %d reported a cache hit with the cache down", i)
		}
	}
	if store.SnapshotCalls.Load() != 2 {
		t.Errorf("snapshot fetched %d times, want 2", store.SnapshotCalls.Load())
	}
}

func TestEngine_NoCacheComputesEveryCall(t *testing.T) {
	store := storeOf(footballPlayer("p1"))
	e := newTestEngine(store, nil)

	for i := 0; i < 3; i++ {
		got, err := e.PredictPerformance(context.Background(), "p1", models.HorizonSeason)
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if got.Meta.CacheHit {
			t.Errorf("call %d reported a cache hit without a cache", i)
		}
	}
	if store.SnapshotCalls.Load() != 3 {
		t.Errorf("snapshot fetched %d times, want 3", store.SnapshotCalls.Load())
	}
}

func TestEngine_ReversedComparisonServedAsMirror(t *testing.T) {
	a, b := comparePair()
	store := storeOf(a, b)
	e := newTestEngine(store, newMockCache())
	ctx := context.Background()

	ab, err := e.ComparePlayers(ctx, "a", "b")
	if err != nil {
		t.Fatalf("ComparePlayers(a,b) failed: %v", err)
	}
	ba, err := e.ComparePlayers(ctx, "b", "a")
	if err != nil {
		t.Fatalf("ComparePlayers(b,a) failed: %v", err)
	}

	if !ba.Meta.CacheHit {
		t.Error("reversed comparison was recomputed")
	}
	if store.SnapshotCalls.Load() != 2 {
		t.Errorf("snapshot fetched %d times, want 2", store.SnapshotCalls.Load())
	}
	if ba.Data.Player1.ID != "b" || ba.Data.Player2.ID != "a" {
		t.Errorf("reversed players = %s/%s, want b/a", ba.Data.Player1.ID, ba.Data.Player2.ID)
	}
	for i := range ab.Data.Categories {
		if ab.Data.Categories[i].Player1 != ba.Data.Categories[i].Player2 {
			t.Errorf("category %s not mirrored", ab.Data.Categories[i].Category)
		}
	}
}

func TestEngine_TeamBatchCollectsFailures(t *testing.T) {
	store := storeOf(footballPlayer("p1"), footballPlayer("p2"))
	store.GetTeamRosterFunc = func(ctx context.Context, teamID string) ([]string, error) {
		return []string{"p1", "ghost", "p2"}, nil
	}
	e := newTestEngine(store, newMockCache())

	got, err := e.TeamMarketValue(context.Background(), "t1", "EUR")
	if err != nil {
		t.Fatalf("TeamMarketValue failed: %v", err)
	}
	if len(got.Successes) != 2 {
		t.Errorf("%d successes, want 2", len(got.Successes))
	}
	if len(got.Errors) != 1 || got.Errors[0].PlayerID != "ghost" {
		t.Errorf("errors = %+v, want one for ghost", got.Errors)
	}
	if got.Successes[0].Data.PlayerID != "p1" || got.Successes[1].Data.PlayerID != "p2" {
		t.Error("successes not in roster order")
	}
	if got.Successes[0].Data.Currency != "EUR" {
		t.Errorf("currency = %s, want EUR", got.Successes[0].Data.Currency)
	}
	if got.Meta.CacheHit {
		t.Error("partial batch reported as fully cached")
	}
}

func TestEngine_TeamPerformanceBounded(t *testing.T) {
	const players = 20
	roster := make([]string, players)
	snapshots := make([]*models.PlayerSnapshot, players)
	for i := range roster {
		roster[i] = fmt.Sprintf("p%02d", i)
		snapshots[i] = footballPlayer(roster[i])
	}
	base := storeOf(snapshots...)

	var mu sync.Mutex
	var inFlight, peak int
	store := &MockStore{
		GetPlayerSnapshotFunc: func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
			mu.Lock()
			inFlight++
			peak = max(peak, inFlight)
			mu.Unlock()
			time.Sleep(2 * time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
			return base.GetPlayerSnapshot(ctx, playerID)
		},
		GetTeamRosterFunc: func(ctx context.Context, teamID string) ([]string, error) {
			return roster, nil
		},
	}
	e := NewEngine(EngineConfig{Store: store, Logger: zap.NewNop(), Now: func() time.Time { return testNow }, BatchConcurrency: 3})

	got, err := e.TeamPerformance(context.Background(), "t1", models.HorizonNextWeek)
	if err != nil {
		t.Fatalf("TeamPerformance failed: %v", err)
	}
	if len(got.Successes) != players || len(got.Errors) != 0 {
		t.Errorf("successes/errors = %d/%d, want %d/0", len(got.Successes), len(got.Errors), players)
	}
	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak)
	}
}

func TestEngine_Invalidate(t *testing.T) {
	store := storeOf(steadyStriker(7.0))
	cache := newMockCache()
	e := newTestEngine(store, cache)
	ctx := context.Background()

	if _, err := e.CalculateMarketValue(ctx, "p1", "USD"); err != nil {
		t.Fatalf("CalculateMarketValue failed: %v", err)
	}
	if _, err := e.PredictInjuryRisk(ctx, "p1"); err != nil {
		t.Fatalf("PredictInjuryRisk failed: %v", err)
	}
	if !cache.has("value:p1:USD") || !cache.has("injury:p1") {
		t.Fatal("assessments were not cached under their feature keys")
	}

	if err := e.Invalidate(ctx, "p1"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if cache.has("value:p1:USD") || cache.has("injury:p1") {
		t.Error("entries survived invalidation")
	}
	want := 1 + len(models.AllHorizons) + len(SupportedCurrencies())
	if len(cache.deleted) != want {
		t.Errorf("deleted %d keys, want %d", len(cache.deleted), want)
	}
	if !cache.has(generationKey("p1")) {
		t.Error("comparison generation was not advanced")
	}

	got, err := e.CalculateMarketValue(ctx, "p1", "USD")
	if err != nil {
		t.Fatalf("CalculateMarketValue failed: %v", err)
	}
	if got.Meta.CacheHit {
		t.Error("invalidated entry served from cache")
	}

	cache.Err = errors.New("timeout")
	if err := e.Invalidate(ctx, "p1"); !errors.Is(err, ErrCacheUnavailable) {
		t.Errorf("expected ErrCacheUnavailable, got %v", err)
	}
}

func TestEngine_InvalidateRefreshesComparisons(t *testing.T) {
	a, b := comparePair()
	store := storeOf(a, b)
	e := newTestEngine(store, newMockCache())
	ctx := context.Background()

	before, err := e.ComparePlayers(ctx, "a", "b")
	if err != nil {
		t.Fatalf("ComparePlayers failed: %v", err)
	}
	if cached, _ := e.ComparePlayers(ctx, "a", "b"); !cached.Meta.CacheHit {
		t.Fatal("repeated comparison was not cached")
	}

	a.Matches = matchesWithRatings(3, 3, 3, 3, 3)
	if err := e.Invalidate(ctx, "a"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	after, err := e.ComparePlayers(ctx, "b", "a")
	if err != nil {
		t.Fatalf("ComparePlayers failed: %v", err)
	}
	if after.Meta.CacheHit {
		t.Error("comparison with an invalidated player served from cache")
	}
	if after.Data.Player2.AverageRating == before.Data.Player1.AverageRating {
		t.Errorf("average rating still %v after new matches", after.Data.Player2.AverageRating)
	}
	if again, _ := e.ComparePlayers(ctx, "a", "b"); !again.Meta.CacheHit {
		t.Error("fresh comparison was not cached under the new generation")
	}
}

func TestCompareKeyIsOrderIndependent(t *testing.T) {
	if compareKey("a", "b") != compareKey("b", "a") {
		t.Error("compare keys differ by argument order")
	}
	if got := performanceKey("p1", models.HorizonSeason); got != "performance:p1:SEASON" {
		t.Errorf("performanceKey = %s", got)
	}
}
