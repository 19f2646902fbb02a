package logic

import (
	"context"
	"fmt"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// PredictInjuryRisk returns the injury risk assessment for a player
func (e *Engine) PredictInjuryRisk(ctx context.Context, playerID string) (*models.Envelope[models.InjuryRiskAssessment], error) {
	return serve(ctx, e, featureInjury, injuryKey(playerID), injuryTTL, func(ctx context.Context) (*models.InjuryRiskAssessment, error) {
		s, profile, sum, err := e.load(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return AssessInjuryRisk(s, sum, profile), nil
	})
}

// PredictPerformance forecasts a player's performance over a horizon
func (e *Engine) PredictPerformance(ctx context.Context, playerID string, horizon models.Horizon) (*models.Envelope[models.PerformancePrediction], error) {
	horizon, err := ParseHorizon(string(horizon))
	if err != nil {
		return nil, err
	}
	return serve(ctx, e, featurePerformance, performanceKey(playerID, horizon), HorizonTTL(horizon), func(ctx context.Context) (*models.PerformancePrediction, error) {
		s, profile, sum, err := e.load(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return PredictPerformance(s, sum, profile, horizon)
	})
}

// CalculateMarketValue values a player in the requested currency
func (e *Engine) CalculateMarketValue(ctx context.Context, playerID, currency string) (*models.Envelope[models.MarketValueAssessment], error) {
	currency, err := ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	return serve(ctx, e, featureValue, valueKey(playerID, currency), valueTTL, func(ctx context.Context) (*models.MarketValueAssessment, error) {
		s, profile, sum, err := e.load(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return CalculateMarketValue(s, sum, profile, currency)
	})
}

// ComparePlayers compares two players of the same sport. The pair is computed
// in id order and mirrored when requested the other way round.
func (e *Engine) ComparePlayers(ctx context.Context, player1, player2 string) (*models.Envelope[models.PlayerComparison], error) {
	if player1 == player2 {
		return nil, fmt.Errorf("%w: cannot compare %s with itself", ErrInvalidComparison, player1)
	}
	first, second := player1, player2
	if second < first {
		first, second = second, first
	}

	env, err := serve(ctx, e, featureCompare, e.comparisonKey(ctx, first, second), compareTTL, func(ctx context.Context) (*models.PlayerComparison, error) {
		a, err := e.store.GetPlayerSnapshot(ctx, first)
		if err != nil {
			return nil, fmt.Errorf("load player %s: %w", first, err)
		}
		b, err := e.store.GetPlayerSnapshot(ctx, second)
		if err != nil {
			return nil, fmt.Errorf("load player %s: %w", second, err)
		}
		if a.Sport != b.Sport {
			return nil, fmt.Errorf("%w: %s plays %s, %s plays %s", ErrInvalidComparison, a.ID, a.Sport, b.ID, b.Sport)
		}
		profile, err := registry.Get(a.Sport)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSport, err)
		}
		now := e.now()
		return ComparePlayers(a, b, Aggregate(a, now), Aggregate(b, now), profile)
	})
	if err != nil {
		return nil, err
	}
	if first != player1 {
		env.Data = env.Data.Mirror()
	}
	return env, nil
}

// TeamInjuryRisk assesses every player on a team
func (e *Engine) TeamInjuryRisk(ctx context.Context, teamID string) (*models.BatchResult[models.InjuryRiskAssessment], error) {
	return batch(ctx, e, featureInjury, teamID, e.PredictInjuryRisk)
}

// TeamPerformance forecasts every player on a team
func (e *Engine) TeamPerformance(ctx context.Context, teamID string, horizon models.Horizon) (*models.BatchResult[models.PerformancePrediction], error) {
	horizon, err := ParseHorizon(string(horizon))
	if err != nil {
		return nil, err
	}
	return batch(ctx, e, featurePerformance, teamID, func(ctx context.Context, playerID string) (*models.Envelope[models.PerformancePrediction], error) {
		return e.PredictPerformance(ctx, playerID, horizon)
	})
}

// TeamMarketValue values every player on a team
func (e *Engine) TeamMarketValue(ctx context.Context, teamID, currency string) (*models.BatchResult[models.MarketValueAssessment], error) {
	currency, err := ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	return batch(ctx, e, featureValue, teamID, func(ctx context.Context, playerID string) (*models.Envelope[models.MarketValueAssessment], error) {
		return e.CalculateMarketValue(ctx, playerID, currency)
	})
}
