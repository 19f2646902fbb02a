package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// MockPredictionService implements logic.PredictionService for testing
type MockPredictionService struct {
	PredictInjuryRiskFunc    func(ctx context.Context, playerID string) (*models.Envelope[models.InjuryRiskAssessment], error)
	PredictPerformanceFunc   func(ctx context.Context, playerID string, horizon models.Horizon) (*models.Envelope[models.PerformancePrediction], error)
	CalculateMarketValueFunc func(ctx context.Context, playerID, currency string) (*models.Envelope[models.MarketValueAssessment], error)
	ComparePlayersFunc       func(ctx context.Context, player1, player2 string) (*models.Envelope[models.PlayerComparison], error)
	TeamInjuryRiskFunc       func(ctx context.Context, teamID string) (*models.BatchResult[models.InjuryRiskAssessment], error)
	TeamPerformanceFunc      func(ctx context.Context, teamID string, horizon models.Horizon) (*models.BatchResult[models.PerformancePrediction], error)
	TeamMarketValueFunc      func(ctx context.Context, teamID, currency string) (*models.BatchResult[models.MarketValueAssessment], error)
	InvalidateFunc           func(ctx context.Context, playerID string) error
}

func (m *MockPredictionService) PredictInjuryRisk(ctx context.Context, playerID string) (*models.Envelope[models.InjuryRiskAssessment], error) {
	if m.PredictInjuryRiskFunc != nil {
		return m.PredictInjuryRiskFunc(ctx, playerID)
	}
	return &models.Envelope[models.InjuryRiskAssessment]{Data: &models.InjuryRiskAssessment{}}, nil
}

func (m *MockPredictionService) PredictPerformance(ctx context.Context, playerID string, horizon models.Horizon) (*models.Envelope[models.PerformancePrediction], error) {
	if m.PredictPerformanceFunc != nil {
		return m.PredictPerformanceFunc(ctx, playerID, horizon)
	}
	return &models.Envelope[models.PerformancePrediction]{Data: &models.PerformancePrediction{}}, nil
}

func (m *MockPredictionService) CalculateMarketValue(ctx context.Context, playerID, currency string) (*models.Envelope[models.MarketValueAssessment], error) {
	if m.CalculateMarketValueFunc != nil {
		return m.CalculateMarketValueFunc(ctx, playerID, currency)
	}
	return &models.Envelope[models.MarketValueAssessment]{Data: &models.MarketValueAssessment{}}, nil
}

func (m *MockPredictionService) ComparePlayers(ctx context.Context, player1, player2 string) (*models.Envelope[models.PlayerComparison], error) {
	if m.ComparePlayersFunc != nil {
		return m.ComparePlayersFunc(ctx, player1, player2)
	}
	return &models.Envelope[models.PlayerComparison]{Data: &models.PlayerComparison{}}, nil
}

func (m *MockPredictionService) TeamInjuryRisk(ctx context.Context, teamID string) (*models.BatchResult[models.InjuryRiskAssessment], error) {
	if m.TeamInjuryRiskFunc != nil {
		return m.TeamInjuryRiskFunc(ctx, teamID)
	}
	return &models.BatchResult[models.InjuryRiskAssessment]{TeamID: teamID}, nil
}

func (m *MockPredictionService) TeamPerformance(ctx context.Context, teamID string, horizon models.Horizon) (*models.BatchResult[models.PerformancePrediction], error) {
	if m.TeamPerformanceFunc != nil {
		return m.TeamPerformanceFunc(ctx, teamID, horizon)
	}
	return &models.BatchResult[models.PerformancePrediction]{TeamID: teamID}, nil
}

func (m *MockPredictionService) TeamMarketValue(ctx context.Context, teamID, currency string) (*models.BatchResult[models.MarketValueAssessment], error) {
	if m.TeamMarketValueFunc != nil {
		return m.TeamMarketValueFunc(ctx, teamID, currency)
	}
	return &models.BatchResult[models.MarketValueAssessment]{TeamID: teamID}, nil
}

func (m *MockPredictionService) Invalidate(ctx context.Context, playerID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, playerID)
	}
	return nil
}

// MockEventQueue implements EventQueue for testing
type MockEventQueue struct {
	EnqueueFunc func(event *models.PlayerUpdatedEvent) bool
	Depth       int
}

func (m *MockEventQueue) Enqueue(event *models.PlayerUpdatedEvent) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(event)
	}
	return true
}

func (m *MockEventQueue) QueueDepth() int { return m.Depth }

// MockDatabase implements Database for testing
type MockDatabase struct {
	PingErr  error
	ExecFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockDatabase) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockDatabase) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

// MockClickHouseConn implements the driver.Conn calls the handlers make
type MockClickHouseConn struct {
	driver.Conn
	PingErr  error
	ExecFunc func(ctx context.Context, query string, args ...any) error
}

func (m *MockClickHouseConn) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...any) error {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, query, args...)
	}
	return nil
}

// MockPinger implements Pinger for testing
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

var errBoom = errors.New("boom")

func newTestHandler(engine *MockPredictionService) *Handler {
	return New(Config{
		Engine:     engine,
		WorkerPool: &MockEventQueue{},
		Postgres:   &MockDatabase{},
		ClickHouse: &MockClickHouseConn{},
		Logger:     zap.NewNop(),
	})
}

// withURLParams attaches chi route parameters to a request
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
