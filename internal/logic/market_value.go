package logic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// BaseCurrency is the currency registry base values are expressed in
const BaseCurrency = "GBP"

// valueTTL is how long a market value assessment stays valid
const valueTTL = 24 * time.Hour

const (
	valueRangeSpread = 0.20
	trendDeadband    = 10.0 // percent

	contributionWeight = 0.5
	contributionCap    = 1.5

	sellAge         = 30
	decliningOldAge = 29
)

// currencyRates converts one unit of BaseCurrency into each supported currency
var currencyRates = map[string]decimal.Decimal{
	"GBP": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("1.17"),
	"USD": decimal.RequireFromString("1.27"),
	"AUD": decimal.RequireFromString("1.93"),
	"CAD": decimal.RequireFromString("1.72"),
	"NZD": decimal.RequireFromString("2.09"),
	"ZAR": decimal.RequireFromString("23.5"),
	"INR": decimal.RequireFromString("105"),
	"JPY": decimal.RequireFromString("190"),
}

// ParseCurrency normalizes a currency code and checks it against the rate table
func ParseCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return BaseCurrency, nil
	}
	if _, ok := currencyRates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// SupportedCurrencies lists the rate table codes in sorted order
func SupportedCurrencies() []string {
	out := make([]string, 0, len(currencyRates))
	for c := range currencyRates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// convert applies the rate table and rounds to whole currency units
func convert(gbp float64, currency string) float64 {
	v, _ := decimal.NewFromFloat(gbp).Mul(currencyRates[currency]).Round(0).Float64()
	return v
}

type performanceTier struct {
	name       string
	minRating  float64
	multiplier float64
}

// performanceTiers is ordered from best to worst; the first matching floor wins
var performanceTiers = []performanceTier{
	{"ELITE", 8.5, 3.0},
	{"EXCELLENT", 7.5, 2.2},
	{"VERY_GOOD", 6.5, 1.5},
	{"GOOD", 5.5, 1.0},
	{"AVERAGE", 4.5, 0.7},
	{"POOR", 0, 0.4},
}

func performanceTierFor(rating float64) performanceTier {
	for _, t := range performanceTiers {
		if rating >= t.minRating {
			return t
		}
	}
	return performanceTiers[len(performanceTiers)-1]
}

func experienceMultiplier(appearances int) float64 {
	switch {
	case appearances >= 200:
		return 1.2
	case appearances >= 100:
		return 1.1
	case appearances >= 50:
		return 1.0
	case appearances >= 20:
		return 0.9
	default:
		return 0.8
	}
}

func contractMultiplier(c *models.Contract) float64 {
	if c == nil {
		return 0.5
	}
	switch y := c.YearsRemaining; {
	case y >= 4:
		return 1.2
	case y >= 3:
		return 1.1
	case y >= 2:
		return 1.0
	case y >= 1:
		return 0.85
	case y > 0:
		return 0.7
	default:
		return 0.5
	}
}

func trendMultiplier(t models.FormTrend) float64 {
	switch t {
	case models.TrendImproving:
		return 1.1
	case models.TrendDeclining:
		return 0.9
	default:
		return 1.0
	}
}

func directionOf(multiplier float64) models.FactorDirection {
	switch {
	case multiplier > 1:
		return models.DirectionPositive
	case multiplier < 1:
		return models.DirectionNegative
	default:
		return models.DirectionNeutral
	}
}

// CalculateMarketValue values a player in the requested currency. Factors are
// applied in a fixed order and conversion happens last.
func CalculateMarketValue(s *models.PlayerSnapshot, sum WorkloadSummary, profile *registry.Profile, currency string) (*models.MarketValueAssessment, error) {
	rate, ok := currencyRates[currency]
	if !ok || rate.IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}

	base := profile.BaseValue(s.Tier)
	value := base
	var factors []models.ValueFactor
	apply := func(name string, multiplier float64, detail string) {
		value *= multiplier
		factors = append(factors, models.ValueFactor{
			Name:       name,
			Multiplier: multiplier,
			Direction:  directionOf(multiplier),
			Detail:     detail,
		})
	}

	tier := performanceTierFor(sum.SeasonAvgRating)
	apply("performance", tier.multiplier, fmt.Sprintf("%s at average rating %.2f", tier.name, sum.SeasonAvgRating))

	apply("position", profile.PositionMultiplier(s.Position), registry.NormalizePosition(s.Position))

	// Age 0 is unknown and valued neutrally
	if s.Age > 0 {
		apply("age", profile.AgeMultiplier(s.Age), fmt.Sprintf("age %d", s.Age))
	} else {
		apply("age", 1.0, "age unknown")
	}

	appearances := s.CareerAppearances
	if appearances == 0 {
		appearances = len(s.Matches)
	}
	apply("experience", experienceMultiplier(appearances), fmt.Sprintf("%d appearances", appearances))

	apply("form", trendMultiplier(sum.FormTrend), string(sum.FormTrend))

	apply("consistency", 0.9+sum.Consistency/100*0.2, fmt.Sprintf("consistency %.1f", sum.Consistency))

	contractDetail := "free agent"
	if s.Contract != nil {
		contractDetail = fmt.Sprintf("%.1f years remaining", s.Contract.YearsRemaining)
	}
	apply("contract", contractMultiplier(s.Contract), contractDetail)

	involvement := sum.AvgGoalsPerMatch + sum.AvgAssistsPerMatch
	bonus := min(contributionCap, 1+involvement*contributionWeight)
	apply("contribution", bonus, fmt.Sprintf("%.2f goal involvements per match", involvement))

	trend, change := valueTrend(value, s.LastMarketValue)

	confidence := formConfidence(sum)
	return &models.MarketValueAssessment{
		AssessmentMeta: models.AssessmentMeta{
			PlayerID:        s.ID,
			Confidence:      confidence,
			ConfidenceScore: confidence.Score(),
			DataWarnings:    dataWarnings(sum),
		},
		Currency:        currency,
		Value:           convert(value, currency),
		ValueLow:        convert(value*(1-valueRangeSpread), currency),
		ValueHigh:       convert(value*(1+valueRangeSpread), currency),
		BaseValue:       convert(base, currency),
		Factors:         factors,
		PerformanceTier: tier.name,
		Trend:           trend,
		ChangePercent:   round2(change),
		Recommendation:  recommendTransfer(s, trend),
	}, nil
}

// valueTrend compares against the last known value, both in BaseCurrency
func valueTrend(value, previous float64) (models.ValueTrend, float64) {
	if previous <= 0 {
		return models.ValueStable, 0
	}
	change := (value - previous) / previous * 100
	switch {
	case change > trendDeadband:
		return models.ValueRising, change
	case change < -trendDeadband:
		return models.ValueFalling, change
	default:
		return models.ValueStable, change
	}
}

// recommendTransfer evaluates the transfer rule table top to bottom
func recommendTransfer(s *models.PlayerSnapshot, trend models.ValueTrend) models.TransferRecommendation {
	expiring := s.Contract == nil || s.Contract.YearsRemaining <= 1
	switch {
	case expiring && s.Age >= sellAge:
		return models.TransferRecommendation{Action: models.TransferSell, Reason: "contract expiring and player past 30"}
	case expiring:
		return models.TransferRecommendation{Action: models.TransferExtendContract, Reason: "contract expiring within a year"}
	case trend == models.ValueFalling && s.Age >= decliningOldAge:
		return models.TransferRecommendation{Action: models.TransferSell, Reason: "value falling for a player near decline"}
	case trend == models.ValueFalling:
		return models.TransferRecommendation{Action: models.TransferMonitor, Reason: "value falling"}
	default:
		return models.TransferRecommendation{Action: models.TransferHold, Reason: "value stable or rising with contract secured"}
	}
}
