package logic

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// compareTTL is how long a comparison stays valid
const compareTTL = time.Hour

const (
	epsilon        = 1e-9
	winMargin      = 5.0
	keyDiffMinimum = 0.2
	keyDiffHigh    = 0.5
	keyDiffMedium  = 0.3
	maxKeyDiffs    = 6

	similarityPosition = 0.25
	similarityRating   = 0.30
	similarityCategory = 0.30
	similarityAge      = 0.15
)

// metricAverages returns the per-match mean of every metric the categories use
func metricAverages(s *models.PlayerSnapshot, categories []registry.Category) map[string]float64 {
	out := make(map[string]float64)
	if len(s.Matches) == 0 {
		for _, c := range categories {
			for _, metric := range c.Metrics {
				out[metric.Key] = 0
			}
		}
		return out
	}
	n := float64(len(s.Matches))
	for _, c := range categories {
		for _, metric := range c.Metrics {
			if _, done := out[metric.Key]; done {
				continue
			}
			var total float64
			for _, match := range s.Matches {
				total += metricValue(match, metric.Key)
			}
			out[metric.Key] = total / n
		}
	}
	return out
}

func metricValue(m models.MatchPerformance, key string) float64 {
	switch key {
	case "goals":
		return float64(m.Goals)
	case "assists":
		return float64(m.Assists)
	case "rating":
		return m.Rating
	case "minutes":
		return float64(m.MinutesPlayed)
	default:
		return m.Stats[key]
	}
}

// normalize maps a metric onto 0-100 relative to the better of the two players.
// Signed metrics such as plus/minus are shifted so the pair's minimum is zero.
func normalize(v, a, b float64, lowerIsBetter bool) float64 {
	if shift := -math.Min(math.Min(a, b), 0); shift > 0 {
		v, a, b = v+shift, a+shift, b+shift
	}
	if lowerIsBetter {
		if v <= 0 {
			return 100
		}
		return clamp(math.Min(a, b)/v*100, 0, 100)
	}
	return clamp(v/math.Max(math.Max(a, b), epsilon)*100, 0, 100)
}

func winner(score1, score2 float64) models.ComparisonOutcome {
	switch {
	case score1-score2 > winMargin:
		return models.OutcomePlayer1
	case score2-score1 > winMargin:
		return models.OutcomePlayer2
	default:
		return models.OutcomeDraw
	}
}

func significanceFor(gap float64) models.Significance {
	switch {
	case gap > keyDiffHigh:
		return models.SignificanceHigh
	case gap > keyDiffMedium:
		return models.SignificanceMedium
	default:
		return models.SignificanceLow
	}
}

// ComparePlayers compares two players of the same sport category by category
func ComparePlayers(a, b *models.PlayerSnapshot, sumA, sumB WorkloadSummary, profile *registry.Profile) (*models.PlayerComparison, error) {
	if a.Sport != b.Sport {
		return nil, fmt.Errorf("%w: %s plays %s, %s plays %s", ErrInvalidComparison, a.ID, a.Sport, b.ID, b.Sport)
	}
	if a.ID == b.ID {
		return nil, fmt.Errorf("%w: cannot compare %s with itself", ErrInvalidComparison, a.ID)
	}
	if profile.Sport() != a.Sport {
		return nil, fmt.Errorf("%w: profile for %s used with %s players", ErrInvalidComparison, profile.Sport(), a.Sport)
	}

	categories := profile.Categories()
	avgA := metricAverages(a, categories)
	avgB := metricAverages(b, categories)

	p1 := comparedPlayer(a, sumA, len(categories))
	p2 := comparedPlayer(b, sumB, len(categories))

	results := make([]models.CategoryComparison, 0, len(categories))
	var overall1, overall2, gapTotal float64
	for _, c := range categories {
		var s1, s2 float64
		for _, metric := range c.Metrics {
			va, vb := avgA[metric.Key], avgB[metric.Key]
			s1 += normalize(va, va, vb, metric.LowerIsBetter)
			s2 += normalize(vb, va, vb, metric.LowerIsBetter)
		}
		if len(c.Metrics) > 0 {
			s1 /= float64(len(c.Metrics))
			s2 /= float64(len(c.Metrics))
		}
		overall1 += c.Weight * s1
		overall2 += c.Weight * s2
		gapTotal += math.Abs(s1 - s2)

		p1.CategoryScores[c.Name] = round2(s1)
		p2.CategoryScores[c.Name] = round2(s2)
		results = append(results, models.CategoryComparison{
			Category: c.Name,
			Weight:   c.Weight,
			Player1:  round2(s1),
			Player2:  round2(s2),
			Winner:   winner(s1, s2),
		})
	}
	p1.OverallScore = round2(overall1)
	p2.OverallScore = round2(overall2)

	meanGap := 0.0
	if len(categories) > 0 {
		meanGap = gapTotal / float64(len(categories))
	}

	confidence := formConfidence(sumA)
	if c := formConfidence(sumB); c.Score() < confidence.Score() {
		confidence = c
	}
	var warnings []string
	if sumA.InsufficientData || sumB.InsufficientData {
		warnings = []string{ErrInsufficientData.Error()}
	}

	return &models.PlayerComparison{
		AssessmentMeta: models.AssessmentMeta{
			PlayerID:        a.ID,
			Confidence:      confidence,
			ConfidenceScore: confidence.Score(),
			DataWarnings:    warnings,
		},
		Sport:          a.Sport,
		Player1:        p1,
		Player2:        p2,
		Categories:     results,
		OverallWinner:  winner(overall1, overall2),
		Similarity:     round2(similarity(a, b, sumA, sumB, meanGap)),
		KeyDifferences: keyDifferences(categories, avgA, avgB),
	}, nil
}

func comparedPlayer(s *models.PlayerSnapshot, sum WorkloadSummary, categories int) models.ComparedPlayer {
	return models.ComparedPlayer{
		ID:             s.ID,
		Name:           s.Name,
		Position:       s.Position,
		Age:            s.Age,
		AverageRating:  round2(sum.SeasonAvgRating),
		CategoryScores: make(map[string]float64, categories),
	}
}

func similarity(a, b *models.PlayerSnapshot, sumA, sumB WorkloadSummary, meanCategoryGap float64) float64 {
	position := 50.0
	if registry.NormalizePosition(a.Position) == registry.NormalizePosition(b.Position) {
		position = 100
	}
	rating := clamp(100-math.Abs(sumA.SeasonAvgRating-sumB.SeasonAvgRating)*20, 0, 100)
	category := clamp(100-meanCategoryGap, 0, 100)
	age := clamp(100-math.Abs(float64(a.Age-b.Age))*5, 0, 100)
	return clamp(similarityPosition*position+similarityRating*rating+similarityCategory*category+similarityAge*age, 0, 100)
}

func keyDifferences(categories []registry.Category, avgA, avgB map[string]float64) []models.KeyDifference {
	var diffs []models.KeyDifference
	seen := make(map[string]bool)
	for _, c := range categories {
		for _, metric := range c.Metrics {
			if seen[metric.Key] {
				continue
			}
			seen[metric.Key] = true

			va, vb := avgA[metric.Key], avgB[metric.Key]
			top := math.Max(math.Abs(va), math.Abs(vb))
			if top < epsilon {
				continue
			}
			gap := math.Abs(va-vb) / top
			if gap <= keyDiffMinimum {
				continue
			}
			favours := models.OutcomePlayer1
			if (va < vb) != metric.LowerIsBetter {
				favours = models.OutcomePlayer2
			}
			diffs = append(diffs, models.KeyDifference{
				Metric:       metric.Key,
				Player1:      round2(va),
				Player2:      round2(vb),
				RelativeGap:  round2(gap),
				Significance: significanceFor(gap),
				Favours:      favours,
			})
		}
	}
	sort.SliceStable(diffs, func(i, j int) bool {
		if diffs[i].RelativeGap != diffs[j].RelativeGap {
			return diffs[i].RelativeGap > diffs[j].RelativeGap
		}
		return diffs[i].Metric < diffs[j].Metric
	})
	if len(diffs) > maxKeyDiffs {
		diffs = diffs[:maxKeyDiffs]
	}
	return diffs
}
