package worker

import (
	"context"
	"sync"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// MockInvalidator records invalidated players
type MockInvalidator struct {
	mu           sync.Mutex
	Calls        []string
	InvalidateFn func(ctx context.Context, playerID string) error
	done         chan struct{}
}

func (m *MockInvalidator) Invalidate(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, playerID)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	if m.InvalidateFn != nil {
		return m.InvalidateFn(ctx, playerID)
	}
	return nil
}

func (m *MockInvalidator) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

// MockRecorder records appended matches per player
type MockRecorder struct {
	mu       sync.Mutex
	Recorded map[string][]models.MatchPerformance
	RecordFn func(ctx context.Context, playerID string, matches []models.MatchPerformance) error
}

func (m *MockRecorder) Record(ctx context.Context, playerID string, matches []models.MatchPerformance) error {
	if m.RecordFn != nil {
		if err := m.RecordFn(ctx, playerID, matches); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Recorded == nil {
		m.Recorded = make(map[string][]models.MatchPerformance)
	}
	m.Recorded[playerID] = append(m.Recorded[playerID], matches...)
	return nil
}
