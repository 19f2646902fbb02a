package logic

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

type horizonSpec struct {
	weight          float64 // weight of recent form against the season average
	matches         int     // matches covered by the horizon
	ttl             time.Duration
	spread          float64 // uncertainty growth with horizon length
	confidenceSteps int     // tiers of confidence lost over the horizon
	decay           float64 // numeric confidence decay
}

var horizons = map[models.Horizon]horizonSpec{
	models.HorizonNextMatch: {weight: 0.7, matches: 1, ttl: time.Hour, spread: 1.0, confidenceSteps: 0, decay: 1.0},
	models.HorizonNextWeek:  {weight: 0.6, matches: 2, ttl: 6 * time.Hour, spread: 1.2, confidenceSteps: 0, decay: 0.95},
	models.HorizonNextMonth: {weight: 0.5, matches: 6, ttl: 24 * time.Hour, spread: 1.5, confidenceSteps: 1, decay: 0.85},
	models.HorizonSeason:    {weight: 0.4, matches: 30, ttl: 7 * 24 * time.Hour, spread: 2.0, confidenceSteps: 1, decay: 0.7},
}

const (
	minRating = 1.0
	maxRating = 10.0

	trendAdjustment = 0.3

	fatigueThreshold = 60.0
	fatiguePenalty   = 0.02

	fitnessLow     = 70.0
	fitnessHigh    = 85.0
	fitnessPenalty = 0.02
	fitnessBonus   = 0.01

	injuryPenaltyThreshold = 50.0
	injuryPenalty          = 0.01

	consistencyBonusThreshold = 75.0
	consistencyBonus          = 0.01

	fixtureEasy   = 6.0
	fixtureHard   = 7.5
	fixtureWeight = 0.2

	uncertaintyScale = 1.5
	minUncertainty   = 0.2
)

// ParseHorizon validates a horizon code
func ParseHorizon(s string) (models.Horizon, error) {
	h := models.Horizon(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := horizons[h]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHorizon, s)
	}
	return h, nil
}

// HorizonTTL is the cache lifetime of a prediction for the horizon
func HorizonTTL(h models.Horizon) time.Duration {
	return horizons[h].ttl
}

// FormRatingFor buckets a rating into a form band
func FormRatingFor(rating float64) models.FormRating {
	switch {
	case rating >= 8.0:
		return models.FormExcellent
	case rating >= 7.0:
		return models.FormGood
	case rating >= 6.0:
		return models.FormAverage
	case rating >= 5.0:
		return models.FormPoor
	default:
		return models.FormCritical
	}
}

func formMultiplier(f models.FormRating) float64 {
	switch f {
	case models.FormExcellent:
		return 1.2
	case models.FormGood:
		return 1.1
	case models.FormAverage:
		return 1.0
	case models.FormPoor:
		return 0.85
	default:
		return 0.7
	}
}

// PredictPerformance forecasts rating and contribution over a horizon
func PredictPerformance(s *models.PlayerSnapshot, sum WorkloadSummary, profile *registry.Profile, horizon models.Horizon) (*models.PerformancePrediction, error) {
	spec, ok := horizons[horizon]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHorizon, horizon)
	}

	base := spec.weight*sum.RecentAvgRating + (1-spec.weight)*sum.SeasonAvgRating

	var adjustments []models.RatingAdjustment
	rating := base
	adjust := func(name string, delta float64) {
		if delta == 0 {
			return
		}
		rating += delta
		adjustments = append(adjustments, models.RatingAdjustment{Name: name, Delta: round2(delta)})
	}

	switch sum.FormTrend {
	case models.TrendImproving:
		adjust("form_trend", trendAdjustment)
	case models.TrendDeclining:
		adjust("form_trend", -trendAdjustment)
	}

	if sum.Fatigue > fatigueThreshold {
		adjust("fatigue", -(sum.Fatigue-fatigueThreshold)*fatiguePenalty)
	}

	switch {
	case sum.Fitness < fitnessLow:
		adjust("fitness", -(fitnessLow-sum.Fitness)*fitnessPenalty)
	case sum.Fitness > fitnessHigh:
		adjust("fitness", (sum.Fitness-fitnessHigh)*fitnessBonus)
	}

	risk := AssessInjuryRisk(s, sum, profile).RiskScore
	if risk > injuryPenaltyThreshold {
		adjust("injury_risk", -(risk-injuryPenaltyThreshold)*injuryPenalty)
	}

	if sum.Consistency > consistencyBonusThreshold {
		adjust("consistency", (sum.Consistency-consistencyBonusThreshold)*consistencyBonus)
	}

	if sum.UpcomingFixtures > 0 {
		switch {
		case sum.AvgOpponentRating < fixtureEasy:
			adjust("fixture_difficulty", (fixtureEasy-sum.AvgOpponentRating)*fixtureWeight)
		case sum.AvgOpponentRating > fixtureHard:
			adjust("fixture_difficulty", -(sum.AvgOpponentRating-fixtureHard)*fixtureWeight)
		}
	}

	predicted := clamp(rating, minRating, maxRating)

	width := math.Max(minUncertainty, (100-sum.Consistency)/100*uncertaintyScale*spec.spread)

	form := FormRatingFor(sum.RecentAvgRating)
	mult := formMultiplier(form)
	matches := float64(spec.matches)

	confidence := formConfidence(sum).Degrade(spec.confidenceSteps)

	return &models.PerformancePrediction{
		AssessmentMeta: models.AssessmentMeta{
			PlayerID:        s.ID,
			Confidence:      confidence,
			ConfidenceScore: round2(confidence.Score() * spec.decay),
			DataWarnings:    dataWarnings(sum),
		},
		Horizon:          horizon,
		BaseRating:       round2(base),
		PredictedRating:  round2(predicted),
		RangeLow:         round2(clamp(predicted-width, minRating, maxRating)),
		RangeHigh:        round2(clamp(predicted+width, minRating, maxRating)),
		Adjustments:      adjustments,
		FormTrend:        sum.FormTrend,
		Form:             form,
		ExpectedGoals:    round2(sum.AvgGoalsPerMatch * matches * mult),
		ExpectedAssists:  round2(sum.AvgAssistsPerMatch * matches * mult),
		ExpectedMinutes:  round2(math.Min(sum.AvgMinutesPerMatch*mult, float64(profile.MatchMinutes())) * matches),
		MatchesForecast:  spec.matches,
		MatchesObserved:  sum.MatchesObserved,
		ConsistencyScore: round2(sum.Consistency),
	}, nil
}
