package models

import "time"

// PlayerSnapshot is the flattened, read-only view of a player assembled by the
// data layer for a single request. The engine never mutates it.
type PlayerSnapshot struct {
	ID                    string             `json:"id" yaml:"id"`
	Name                  string             `json:"name" yaml:"name"`
	Sport                 Sport              `json:"sport" yaml:"sport"`
	Position              string             `json:"position" yaml:"position"`
	Age                   int                `json:"age" yaml:"age"`
	TeamID                string             `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	Tier                  CompetitiveTier    `json:"tier" yaml:"tier"`
	Matches               []MatchPerformance `json:"matches" yaml:"matches"` // most recent first
	Training              []TrainingSession  `json:"training" yaml:"training"`
	Injuries              []InjuryRecord     `json:"injuries" yaml:"injuries"`
	Contract              *Contract          `json:"contract,omitempty" yaml:"contract,omitempty"` // nil for free agents
	LastMarketValue       float64            `json:"last_market_value" yaml:"last_market_value"`  // base currency (GBP)
	SeasonMinutes         int                `json:"season_minutes" yaml:"season_minutes"`
	PreviousSeasonMinutes int                `json:"previous_season_minutes" yaml:"previous_season_minutes"`
	CareerAppearances     int                `json:"career_appearances" yaml:"career_appearances"`
	UpcomingFixtures      []Fixture          `json:"upcoming_fixtures" yaml:"upcoming_fixtures"`
	AvgSleepHours         float64            `json:"avg_sleep_hours,omitempty" yaml:"avg_sleep_hours,omitempty"` // 0 when unknown
}

// MatchPerformance is a single appearance
type MatchPerformance struct {
	MatchID       string             `json:"match_id,omitempty" yaml:"match_id,omitempty" validate:"required,max=64"`
	Rating        float64            `json:"rating" yaml:"rating" validate:"gte=0,lte=10"`
	Goals         int                `json:"goals" yaml:"goals" validate:"gte=0"`
	Assists       int                `json:"assists" yaml:"assists" validate:"gte=0"`
	MinutesPlayed int                `json:"minutes_played" yaml:"minutes_played" validate:"gte=0,lte=240"`
	Timestamp     time.Time          `json:"timestamp" yaml:"timestamp" validate:"required"`
	Stats         map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"` // sport specific counters
}

// TrainingIntensity grades a training session
type TrainingIntensity string

const (
	IntensityLow    TrainingIntensity = "LOW"
	IntensityMedium TrainingIntensity = "MEDIUM"
	IntensityHigh   TrainingIntensity = "HIGH"
)

// TrainingSession is an attendance record for one session
type TrainingSession struct {
	Date            time.Time         `json:"date" yaml:"date"`
	DurationMinutes int               `json:"duration_minutes" yaml:"duration_minutes"`
	Intensity       TrainingIntensity `json:"intensity" yaml:"intensity"`
	Attended        bool              `json:"attended" yaml:"attended"`
}

// InjuryRecord is one entry of the injury history
type InjuryRecord struct {
	Type     string     `json:"type" yaml:"type"`
	BodyPart string     `json:"body_part" yaml:"body_part"`
	Severity string     `json:"severity" yaml:"severity"` // "MINOR", "MODERATE", "SEVERE"
	DateFrom time.Time  `json:"date_from" yaml:"date_from"`
	DateTo   *time.Time `json:"date_to,omitempty" yaml:"date_to,omitempty"` // nil while still injured
}

// Active reports whether the injury is unresolved at the given instant
func (i InjuryRecord) Active(now time.Time) bool {
	if i.DateFrom.After(now) {
		return false
	}
	return i.DateTo == nil || i.DateTo.After(now)
}

// Contract is the player's active contract
type Contract struct {
	YearsRemaining float64   `json:"years_remaining" yaml:"years_remaining"`
	StartDate      time.Time `json:"start_date" yaml:"start_date"`
}

// Fixture is an upcoming match used for difficulty adjustment
type Fixture struct {
	Date           time.Time `json:"date" yaml:"date"`
	OpponentRating float64   `json:"opponent_rating" yaml:"opponent_rating"` // 1-10 scale
}
