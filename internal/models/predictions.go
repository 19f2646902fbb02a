package models

import "time"

// ConfidenceTier signals how much history backs an assessment
type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "LOW"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceHigh   ConfidenceTier = "HIGH"
)

// Score maps the tier onto [0,1]
func (c ConfidenceTier) Score() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.7
	default:
		return 0.5
	}
}

// Degrade lowers the tier by the given number of steps, never below LOW
func (c ConfidenceTier) Degrade(steps int) ConfidenceTier {
	tier := c
	for i := 0; i < steps; i++ {
		switch tier {
		case ConfidenceHigh:
			tier = ConfidenceMedium
		default:
			tier = ConfidenceLow
		}
	}
	return tier
}

// AssessmentMeta is stamped on every assessment when it is produced
type AssessmentMeta struct {
	AssessmentID    string         `json:"assessment_id"`
	PlayerID        string         `json:"player_id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	ValidUntil      time.Time      `json:"valid_until"`
	ModelVersion    string         `json:"model_version"`
	Confidence      ConfidenceTier `json:"confidence"`
	ConfidenceScore float64        `json:"confidence_score"`
	DataWarnings    []string       `json:"data_warnings,omitempty"`
}

// Expired reports whether the assessment must be treated as a cache miss
func (m AssessmentMeta) Expired(now time.Time) bool {
	return !now.Before(m.ValidUntil)
}

// Meta exposes the embedded metadata for stamping
func (m *AssessmentMeta) Meta() *AssessmentMeta {
	return m
}

// RiskLevel buckets a 0-100 risk score
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskFactor is one additive contribution to an injury risk score
type RiskFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Detail       string  `json:"detail"`
}

// BodyPartRisk flags an area of the body that needs attention
type BodyPartRisk struct {
	BodyPart string    `json:"body_part"`
	Level    RiskLevel `json:"level"`
	Reason   string    `json:"reason"`
}

// InjuryRiskAssessment is the injury predictor output
type InjuryRiskAssessment struct {
	AssessmentMeta
	Sport           Sport          `json:"sport"`
	Position        string         `json:"position"`
	RiskScore       float64        `json:"risk_score"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Factors         []RiskFactor   `json:"factors"`
	BodyParts       []BodyPartRisk `json:"body_parts"`
	Recommendations []string       `json:"recommendations"`
	AcuteLoad       float64        `json:"acute_load_minutes"`
	ChronicLoad     float64        `json:"chronic_load_minutes"`
	TrainingLoad    float64        `json:"training_load_minutes"`
}

// FormTrend classifies recent form against slightly older form
type FormTrend string

const (
	TrendImproving FormTrend = "IMPROVING"
	TrendStable    FormTrend = "STABLE"
	TrendDeclining FormTrend = "DECLINING"
)

// FormRating buckets recent form for contribution forecasts
type FormRating string

const (
	FormExcellent FormRating = "EXCELLENT"
	FormGood      FormRating = "GOOD"
	FormAverage   FormRating = "AVERAGE"
	FormPoor      FormRating = "POOR"
	FormCritical  FormRating = "CRITICAL"
)

// Horizon is the forward window a performance prediction targets
type Horizon string

const (
	HorizonNextMatch Horizon = "NEXT_MATCH"
	HorizonNextWeek  Horizon = "NEXT_WEEK"
	HorizonNextMonth Horizon = "NEXT_MONTH"
	HorizonSeason    Horizon = "SEASON"
)

// AllHorizons lists horizons from shortest to longest
var AllHorizons = []Horizon{HorizonNextMatch, HorizonNextWeek, HorizonNextMonth, HorizonSeason}

// RatingAdjustment is one additive change applied to the base rating
type RatingAdjustment struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// PerformancePrediction is the performance predictor output
type PerformancePrediction struct {
	AssessmentMeta
	Horizon          Horizon            `json:"horizon"`
	BaseRating       float64            `json:"base_rating"`
	PredictedRating  float64            `json:"predicted_rating"`
	RangeLow         float64            `json:"range_low"`
	RangeHigh        float64            `json:"range_high"`
	Adjustments      []RatingAdjustment `json:"adjustments"`
	FormTrend        FormTrend          `json:"form_trend"`
	Form             FormRating         `json:"form"`
	ExpectedGoals    float64            `json:"expected_goals"`
	ExpectedAssists  float64            `json:"expected_assists"`
	ExpectedMinutes  float64            `json:"expected_minutes"`
	MatchesForecast  int                `json:"matches_forecast"`
	MatchesObserved  int                `json:"matches_observed"`
	ConsistencyScore float64            `json:"consistency"`
}

// FactorDirection records whether a value factor helped or hurt
type FactorDirection string

const (
	DirectionPositive FactorDirection = "POSITIVE"
	DirectionNegative FactorDirection = "NEGATIVE"
	DirectionNeutral  FactorDirection = "NEUTRAL"
)

// ValueFactor is a named multiplier kept for explainability
type ValueFactor struct {
	Name       string          `json:"name"`
	Multiplier float64         `json:"multiplier"`
	Direction  FactorDirection `json:"direction"`
	Detail     string          `json:"detail"`
}

// ValueTrend compares a valuation to the previous one
type ValueTrend string

const (
	ValueRising  ValueTrend = "RISING"
	ValueStable  ValueTrend = "STABLE"
	ValueFalling ValueTrend = "FALLING"
)

// TransferAction is the recommendation from the transfer rule table
type TransferAction string

const (
	TransferSell           TransferAction = "SELL"
	TransferExtendContract TransferAction = "EXTEND_CONTRACT"
	TransferHold           TransferAction = "HOLD"
	TransferMonitor        TransferAction = "MONITOR"
)

// TransferRecommendation pairs an action with the rule that produced it
type TransferRecommendation struct {
	Action TransferAction `json:"action"`
	Reason string         `json:"reason"`
}

// MarketValueAssessment is the market value calculator output
type MarketValueAssessment struct {
	AssessmentMeta
	Currency        string                 `json:"currency"`
	Value           float64                `json:"value"`
	ValueLow        float64                `json:"value_low"`
	ValueHigh       float64                `json:"value_high"`
	BaseValue       float64                `json:"base_value"`
	Factors         []ValueFactor          `json:"factors"`
	PerformanceTier string                 `json:"performance_tier"`
	Trend           ValueTrend             `json:"trend"`
	ChangePercent   float64                `json:"change_percent"`
	Recommendation  TransferRecommendation `json:"recommendation"`
}

// ComparisonOutcome names the winner of a category
type ComparisonOutcome string

const (
	OutcomePlayer1 ComparisonOutcome = "PLAYER1"
	OutcomePlayer2 ComparisonOutcome = "PLAYER2"
	OutcomeDraw    ComparisonOutcome = "DRAW"
)

// Significance buckets a key difference
type Significance string

const (
	SignificanceHigh   Significance = "HIGH"
	SignificanceMedium Significance = "MEDIUM"
	SignificanceLow    Significance = "LOW"
)

// ComparedPlayer summarizes one side of a comparison
type ComparedPlayer struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Position       string             `json:"position"`
	Age            int                `json:"age"`
	AverageRating  float64            `json:"average_rating"`
	CategoryScores map[string]float64 `json:"category_scores"`
	OverallScore   float64            `json:"overall_score"`
}

// CategoryComparison is the head-to-head result for one category
type CategoryComparison struct {
	Category string            `json:"category"`
	Weight   float64           `json:"weight"`
	Player1  float64           `json:"player1"`
	Player2  float64           `json:"player2"`
	Winner   ComparisonOutcome `json:"winner"`
}

// KeyDifference is a metric where the players differ materially
type KeyDifference struct {
	Metric       string            `json:"metric"`
	Player1      float64           `json:"player1"`
	Player2      float64           `json:"player2"`
	RelativeGap  float64           `json:"relative_gap"`
	Significance Significance      `json:"significance"`
	Favours      ComparisonOutcome `json:"favours"`
}

// PlayerComparison is the comparator output
type PlayerComparison struct {
	AssessmentMeta
	Sport          Sport                `json:"sport"`
	Player1        ComparedPlayer       `json:"player1"`
	Player2        ComparedPlayer       `json:"player2"`
	Categories     []CategoryComparison `json:"categories"`
	OverallWinner  ComparisonOutcome    `json:"overall_winner"`
	Similarity     float64              `json:"similarity"`
	KeyDifferences []KeyDifference      `json:"key_differences"`
}

// Mirror returns the same comparison seen from the other side
func (c *PlayerComparison) Mirror() *PlayerComparison {
	out := *c
	out.Player1, out.Player2 = c.Player2, c.Player1
	out.PlayerID = c.Player2.ID
	out.OverallWinner = c.OverallWinner.swap()
	out.Categories = make([]CategoryComparison, len(c.Categories))
	for i, cat := range c.Categories {
		cat.Player1, cat.Player2 = cat.Player2, cat.Player1
		cat.Winner = cat.Winner.swap()
		out.Categories[i] = cat
	}
	if c.KeyDifferences != nil {
		out.KeyDifferences = make([]KeyDifference, len(c.KeyDifferences))
		for i, diff := range c.KeyDifferences {
			diff.Player1, diff.Player2 = diff.Player2, diff.Player1
			diff.Favours = diff.Favours.swap()
			out.KeyDifferences[i] = diff
		}
	}
	return &out
}

func (o ComparisonOutcome) swap() ComparisonOutcome {
	switch o {
	case OutcomePlayer1:
		return OutcomePlayer2
	case OutcomePlayer2:
		return OutcomePlayer1
	default:
		return o
	}
}
