package logic

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

// matchesWithRatings builds a history (most recent first) older than the load windows
func matchesWithRatings(ratings ...float64) []models.MatchPerformance {
	out := make([]models.MatchPerformance, len(ratings))
	for i, r := range ratings {
		out[i] = models.MatchPerformance{
			MatchID:       fmt.Sprintf("m%d", i),
			Rating:        r,
			MinutesPlayed: 90,
			Timestamp:     daysAgo(40 + i*7),
		}
	}
	return out
}

func footballPlayer(id string) *models.PlayerSnapshot {
	return &models.PlayerSnapshot{
		ID:       id,
		Name:     "Player " + id,
		Sport:    models.SportFootball,
		Position: "STRIKER",
		Age:      25,
		TeamID:   "t1",
		Tier:     models.TierProfessional,
	}
}

func mustProfile(sport models.Sport) *registry.Profile {
	p, err := registry.Get(sport)
	if err != nil {
		panic(err)
	}
	return p
}

// MockStore implements SnapshotStore for testing
type MockStore struct {
	GetPlayerSnapshotFunc func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error)
	GetTeamRosterFunc     func(ctx context.Context, teamID string) ([]string, error)
	SnapshotCalls         atomic.Int32
}

func (m *MockStore) GetPlayerSnapshot(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
	m.SnapshotCalls.Add(1)
	if m.GetPlayerSnapshotFunc != nil {
		return m.GetPlayerSnapshotFunc(ctx, playerID)
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

func (m *MockStore) GetTeamRoster(ctx context.Context, teamID string) ([]string, error) {
	if m.GetTeamRosterFunc != nil {
		return m.GetTeamRosterFunc(ctx, teamID)
	}
	return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
}

// storeOf serves fixed snapshots by id
func storeOf(snapshots ...*models.PlayerSnapshot) *MockStore {
	byID := make(map[string]*models.PlayerSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}
	return &MockStore{
		GetPlayerSnapshotFunc: func(ctx context.Context, playerID string) (*models.PlayerSnapshot, error) {
			s, ok := byID[playerID]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
			}
			return s, nil
		},
	}
}

// MockCache is an in-memory Cache that can be told to fail
type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	Err     error
}

func newMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, k := range keys {
		delete(m.entries, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func (m *MockCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
