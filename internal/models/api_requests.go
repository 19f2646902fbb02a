package models

import "time"

// ResponseMeta is the envelope metadata returned with every assessment
type ResponseMeta struct {
	GeneratedAt      time.Time `json:"generated_at"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	CacheHit         bool      `json:"cache_hit"`
	ModelVersion     string    `json:"model_version"`
}

// Envelope wraps an assessment for the API layer
type Envelope[T any] struct {
	Data *T           `json:"data"`
	Meta ResponseMeta `json:"meta"`
}

// PlayerError records why one player of a batch failed
type PlayerError struct {
	PlayerID string `json:"player_id"`
	Error    string `json:"error"`
}

// BatchResult collects the per-player outcomes of a team operation
type BatchResult[T any] struct {
	TeamID    string         `json:"team_id"`
	Successes []*Envelope[T] `json:"successes"`
	Errors    []PlayerError  `json:"errors"`
	Meta      ResponseMeta   `json:"meta"`
}

// PlayerUpdateKind names the kind of data that landed for a player
type PlayerUpdateKind string

const (
	UpdatePerformance PlayerUpdateKind = "performance"
	UpdateInjury      PlayerUpdateKind = "injury"
	UpdateTraining    PlayerUpdateKind = "training"
	UpdateContract    PlayerUpdateKind = "contract"
)

// PlayerUpdatedEvent notifies the engine that cached assessments are stale
type PlayerUpdatedEvent struct {
	PlayerID   string           `json:"player_id" validate:"required,max=64"`
	Kind       PlayerUpdateKind `json:"kind" validate:"required,oneof=performance injury training contract"`
	OccurredAt time.Time        `json:"occurred_at"`

	// Match carries the new appearance for performance updates; it is
	// appended to the match history before the cache is cleared
	Match *MatchPerformance `json:"match,omitempty" validate:"omitempty"`
}

// PerformanceQuery is the validated query for a performance forecast
type PerformanceQuery struct {
	PlayerID string `validate:"required,max=64"`
	Horizon  string `validate:"required,oneof=NEXT_MATCH NEXT_WEEK NEXT_MONTH SEASON"`
}

// MarketValueQuery is the validated query for a valuation
type MarketValueQuery struct {
	PlayerID string `validate:"required,max=64"`
	Currency string `validate:"required,len=3,alpha"`
}

// CompareQuery is the validated query for a head-to-head comparison
type CompareQuery struct {
	Player1 string `validate:"required,max=64"`
	Player2 string `validate:"required,max=64,nefield=Player1"`
}
