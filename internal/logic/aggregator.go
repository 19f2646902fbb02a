package logic

import (
	"math"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
)

const (
	day            = 24 * time.Hour
	acuteWindow    = 7 * day
	chronicWindow  = 28 * day
	injuryLookback = 365 * day

	recentWindow = 5
	trendWindow  = 3
	trendMinimum = 5
	trendDelta   = 0.3

	// Population defaults used when a player has no match history
	defaultRating      = 6.0
	defaultConsistency = 50.0
	defaultFitness     = 75.0
	neutralFatigue     = 50.0
)

// WorkloadSummary is the aggregate view of a snapshot every predictor reads
type WorkloadSummary struct {
	AcuteLoadMinutes      float64
	ChronicLoadMinutes    float64
	AcuteTrainingLoad     float64
	ChronicTrainingLoad   float64
	RecentAvgRating       float64
	SeasonAvgRating       float64
	Consistency           float64
	FormTrend             models.FormTrend
	RecentGoalInvolvement int

	MatchesObserved    int
	TrainingObserved   int
	AvgGoalsPerMatch   float64
	AvgAssistsPerMatch float64
	AvgMinutesPerMatch float64

	InjuriesLastYear int
	InjuredBodyParts []string
	ActiveInjury     bool

	Fatigue float64
	Fitness float64

	UpcomingFixtures  int
	AvgOpponentRating float64

	// SeasonLoadIncrease is current/previous season minutes minus one, 0 when unknown
	SeasonLoadIncrease float64

	InsufficientData bool
}

// Aggregate derives the workload and form summary of a snapshot. It is a pure
// function of its inputs; now anchors the rolling windows.
func Aggregate(s *models.PlayerSnapshot, now time.Time) WorkloadSummary {
	sum := WorkloadSummary{
		MatchesObserved: len(s.Matches),
		FormTrend:       models.TrendStable,
	}

	ratings := make([]float64, 0, len(s.Matches))
	var goals, assists, minutes int
	for i, match := range s.Matches {
		ratings = append(ratings, match.Rating)
		goals += match.Goals
		assists += match.Assists
		minutes += match.MinutesPlayed
		if i < recentWindow {
			sum.RecentGoalInvolvement += match.Goals + match.Assists
		}
		if within(match.Timestamp, now, acuteWindow) {
			sum.AcuteLoadMinutes += float64(match.MinutesPlayed)
		}
		if within(match.Timestamp, now, chronicWindow) {
			sum.ChronicLoadMinutes += float64(match.MinutesPlayed)
		}
	}

	if len(ratings) == 0 {
		sum.InsufficientData = true
		sum.RecentAvgRating = defaultRating
		sum.SeasonAvgRating = defaultRating
		sum.Consistency = defaultConsistency
	} else {
		recent := ratings[:min(recentWindow, len(ratings))]
		sum.RecentAvgRating = mean(recent)
		sum.SeasonAvgRating = mean(ratings)
		sum.Consistency = math.Max(0, 100-stdDev(recent)*20)
		sum.FormTrend = formTrend(ratings)

		n := float64(len(s.Matches))
		sum.AvgGoalsPerMatch = float64(goals) / n
		sum.AvgAssistsPerMatch = float64(assists) / n
		sum.AvgMinutesPerMatch = float64(minutes) / n
	}

	var scheduled, attended int
	for _, session := range s.Training {
		if session.Attended {
			sum.TrainingObserved++
		}
		if !within(session.Date, now, chronicWindow) {
			continue
		}
		scheduled++
		if !session.Attended {
			continue
		}
		attended++
		load := float64(session.DurationMinutes) * intensityFactor(session.Intensity)
		sum.ChronicTrainingLoad += load
		if within(session.Date, now, acuteWindow) {
			sum.AcuteTrainingLoad += load
		}
	}

	seen := make(map[string]bool)
	for _, injury := range s.Injuries {
		if within(injury.DateFrom, now, injuryLookback) {
			sum.InjuriesLastYear++
		}
		if injury.Active(now) {
			sum.ActiveInjury = true
		}
		if injury.BodyPart != "" && !seen[injury.BodyPart] {
			seen[injury.BodyPart] = true
			sum.InjuredBodyParts = append(sum.InjuredBodyParts, injury.BodyPart)
		}
	}

	sum.Fatigue = fatigue(sum, s.AvgSleepHours)
	sum.Fitness = fitness(scheduled, attended, sum.ActiveInjury)

	var opponents float64
	for _, f := range s.UpcomingFixtures {
		if f.OpponentRating <= 0 {
			continue
		}
		sum.UpcomingFixtures++
		opponents += f.OpponentRating
	}
	if sum.UpcomingFixtures > 0 {
		sum.AvgOpponentRating = opponents / float64(sum.UpcomingFixtures)
	}

	if s.PreviousSeasonMinutes > 0 {
		sum.SeasonLoadIncrease = float64(s.SeasonMinutes)/float64(s.PreviousSeasonMinutes) - 1
	}

	return sum
}

// formTrend compares the three most recent ratings with the next three older
func formTrend(ratings []float64) models.FormTrend {
	if len(ratings) < trendMinimum {
		return models.TrendStable
	}
	recent := mean(ratings[:trendWindow])
	older := mean(ratings[trendWindow:min(2*trendWindow, len(ratings))])
	delta := recent - older
	switch {
	case delta > trendDelta:
		return models.TrendImproving
	case delta < -trendDelta:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// fatigue scales the acute:chronic workload ratio onto 0-100 (ratio 1.0 = 50)
func fatigue(sum WorkloadSummary, sleepHours float64) float64 {
	acute := sum.AcuteLoadMinutes + sum.AcuteTrainingLoad
	weeklyChronic := (sum.ChronicLoadMinutes + sum.ChronicTrainingLoad) / 4
	ratio := 1.0
	if weeklyChronic > 0 {
		ratio = acute / weeklyChronic
	}
	f := neutralFatigue * ratio
	if sleepHours > 0 && sleepHours < 7 {
		f += (7 - sleepHours) * 5
	}
	if sum.ActiveInjury {
		f += 10
	}
	return clamp(f, 0, 100)
}

// fitness derives a 0-100 fitness score from recent training attendance
func fitness(scheduled, attended int, activeInjury bool) float64 {
	f := defaultFitness
	if scheduled > 0 {
		f = 60 + 30*float64(attended)/float64(scheduled)
	}
	if activeInjury {
		f -= 20
	}
	return clamp(f, 0, 100)
}

func intensityFactor(i models.TrainingIntensity) float64 {
	switch i {
	case models.IntensityLow:
		return 0.8
	case models.IntensityHigh:
		return 1.3
	default:
		return 1.0
	}
}

// within reports whether t falls in the window ending at now
func within(t, now time.Time, window time.Duration) bool {
	return !t.After(now) && now.Sub(t) < window
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// stdDev is the population standard deviation
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - mu) * (v - mu)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds to two decimal places for presentation
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
