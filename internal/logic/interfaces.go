package logic

import (
	"context"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// SnapshotStore is the data-access collaborator. Implementations return
// errors wrapping ErrPlayerNotFound, ErrTeamNotFound or ErrUpstreamUnavailable.
type SnapshotStore interface {
	GetPlayerSnapshot(ctx context.Context, playerID string) (*models.PlayerSnapshot, error)
	GetTeamRoster(ctx context.Context, teamID string) ([]string, error)
}

// Cache stores serialized assessments with a time-to-live
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// PredictionService is the engine surface consumed by the HTTP handlers
type PredictionService interface {
	PredictInjuryRisk(ctx context.Context, playerID string) (*models.Envelope[models.InjuryRiskAssessment], error)
	PredictPerformance(ctx context.Context, playerID string, horizon models.Horizon) (*models.Envelope[models.PerformancePrediction], error)
	CalculateMarketValue(ctx context.Context, playerID, currency string) (*models.Envelope[models.MarketValueAssessment], error)
	ComparePlayers(ctx context.Context, player1, player2 string) (*models.Envelope[models.PlayerComparison], error)

	TeamInjuryRisk(ctx context.Context, teamID string) (*models.BatchResult[models.InjuryRiskAssessment], error)
	TeamPerformance(ctx context.Context, teamID string, horizon models.Horizon) (*models.BatchResult[models.PerformancePrediction], error)
	TeamMarketValue(ctx context.Context, teamID, currency string) (*models.BatchResult[models.MarketValueAssessment], error)

	Invalidate(ctx context.Context, playerID string) error
}
