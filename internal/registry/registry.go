// Package registry holds the immutable per-sport lookup tables used by the
// analytics engine: position value multipliers, age curves, injury baselines,
// comparison categories, formations and base valuations.
//
// Every sport in models.AllSports resolves through Get. A sport missing from
// the switch is reported as ErrUnknownSport rather than silently defaulted.
package registry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pitchconnect/analytics-api/internal/models"
)

// ErrUnknownSport is returned for sports outside the enumeration
var ErrUnknownSport = errors.New("unknown sport")

const (
	// DefaultPositionMultiplier applies to positions absent from a profile
	DefaultPositionMultiplier = 1.0
	// DefaultPositionInjuryRisk applies to positions absent from a profile
	DefaultPositionInjuryRisk = 45.0
)

// Metric is one measurable used by the comparator
type Metric struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	LowerIsBetter bool   `json:"lower_is_better,omitempty"`
}

// Category groups metrics with a weight for the overall comparison
type Category struct {
	Name    string   `json:"name"`
	Weight  float64  `json:"weight"`
	Metrics []Metric `json:"metrics"`
}

// AgeCurve describes how value develops and declines with age
type AgeCurve struct {
	PeakStart             int     `json:"peak_start"`
	PeakEnd               int     `json:"peak_end"`
	DevelopmentMultiplier float64 `json:"development_multiplier"`
	DeclineRate           float64 `json:"decline_rate"`
	YouthCeiling          float64 `json:"youth_ceiling"`
	Floor                 float64 `json:"floor"`
}

// Multiplier evaluates the curve at the given age
func (c AgeCurve) Multiplier(age int) float64 {
	switch {
	case age < c.PeakStart:
		bonus := 1 + c.DevelopmentMultiplier*float64(c.PeakStart-age)
		return math.Min(c.YouthCeiling, bonus)
	case age <= c.PeakEnd:
		return 1.0
	default:
		decline := 1 - c.DeclineRate*float64(age-c.PeakEnd)
		return math.Max(c.Floor, decline)
	}
}

// Profile is the configuration of a single sport. It is built once at package
// initialization and only exposed through read accessors.
type Profile struct {
	sport         models.Sport
	positions     []string
	positionValue map[string]float64
	injuryRisk    map[string]float64
	injuryAreas   map[string][]string
	ageCurve      AgeCurve
	categories    []Category
	formations    []string
	baseValue     map[models.CompetitiveTier]float64
	matchMinutes  int
}

type positionSpec struct {
	code   string
	value  float64
	injury float64
	areas  []string
}

type profileSpec struct {
	sport        models.Sport
	matchMinutes int
	ageCurve     AgeCurve
	positions    []positionSpec
	categories   []Category
	formations   []string
	baseValue    map[models.CompetitiveTier]float64
}

func newProfile(spec profileSpec) *Profile {
	p := &Profile{
		sport:         spec.sport,
		positionValue: make(map[string]float64, len(spec.positions)),
		injuryRisk:    make(map[string]float64, len(spec.positions)),
		injuryAreas:   make(map[string][]string, len(spec.positions)),
		ageCurve:      spec.ageCurve,
		categories:    spec.categories,
		formations:    spec.formations,
		baseValue:     spec.baseValue,
		matchMinutes:  spec.matchMinutes,
	}
	for _, pos := range spec.positions {
		p.positions = append(p.positions, pos.code)
		p.positionValue[pos.code] = pos.value
		p.injuryRisk[pos.code] = pos.injury
		p.injuryAreas[pos.code] = pos.areas
	}
	return p
}

// Get returns the profile of a sport
func Get(sport models.Sport) (*Profile, error) {
	switch sport {
	case models.SportFootball:
		return football, nil
	case models.SportFutsal:
		return futsal, nil
	case models.SportBeachFootball:
		return beachFootball, nil
	case models.SportRugby:
		return rugby, nil
	case models.SportAmericanFootball:
		return americanFootball, nil
	case models.SportAustralianRules:
		return australianRules, nil
	case models.SportGaelicFootball:
		return gaelicFootball, nil
	case models.SportBasketball:
		return basketball, nil
	case models.SportNetball:
		return netball, nil
	case models.SportHockey:
		return hockey, nil
	case models.SportLacrosse:
		return lacrosse, nil
	case models.SportCricket:
		return cricket, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
}

// NormalizePosition maps free-form position labels onto registry codes
func NormalizePosition(position string) string {
	p := strings.ToUpper(strings.TrimSpace(position))
	p = strings.ReplaceAll(p, "-", "_")
	return strings.Join(strings.Fields(p), "_")
}

// Sport returns the sport the profile describes
func (p *Profile) Sport() models.Sport { return p.sport }

// MatchMinutes is the regulation length of a match
func (p *Profile) MatchMinutes() int { return p.matchMinutes }

// AgeCurve returns the sport's age curve
func (p *Profile) AgeCurve() AgeCurve { return p.ageCurve }

// Positions returns the position catalogue
func (p *Profile) Positions() []string {
	return append([]string(nil), p.positions...)
}

// HasPosition reports whether the position is catalogued
func (p *Profile) HasPosition(position string) bool {
	_, ok := p.positionValue[NormalizePosition(position)]
	return ok
}

// PositionMultiplier returns the value multiplier, 1.0 for unknown positions
func (p *Profile) PositionMultiplier(position string) float64 {
	if v, ok := p.positionValue[NormalizePosition(position)]; ok {
		return v
	}
	return DefaultPositionMultiplier
}

// AgeMultiplier evaluates the sport's age curve
func (p *Profile) AgeMultiplier(age int) float64 {
	return p.ageCurve.Multiplier(age)
}

// PositionInjuryRisk returns the baseline injury risk, 45 for unknown positions
func (p *Profile) PositionInjuryRisk(position string) float64 {
	if v, ok := p.injuryRisk[NormalizePosition(position)]; ok {
		return v
	}
	return DefaultPositionInjuryRisk
}

// CommonInjuryAreas lists body parts commonly injured in the position
func (p *Profile) CommonInjuryAreas(position string) []string {
	areas, ok := p.injuryAreas[NormalizePosition(position)]
	if !ok {
		return []string{"hamstring", "knee", "ankle"}
	}
	return append([]string(nil), areas...)
}

// Categories returns the comparison categories
func (p *Profile) Categories() []Category {
	out := make([]Category, len(p.categories))
	for i, c := range p.categories {
		c.Metrics = append([]Metric(nil), c.Metrics...)
		out[i] = c
	}
	return out
}

// Formations returns the formation catalogue
func (p *Profile) Formations() []string {
	return append([]string(nil), p.formations...)
}

// BaseValue returns the base valuation in GBP for a competitive tier.
// Unknown tiers are valued as amateur.
func (p *Profile) BaseValue(tier models.CompetitiveTier) float64 {
	if v, ok := p.baseValue[tier]; ok {
		return v
	}
	return p.baseValue[models.TierAmateur]
}

// Summary is the serializable view of a profile
type Summary struct {
	Sport        models.Sport                       `json:"sport"`
	MatchMinutes int                                `json:"match_minutes"`
	Positions    []PositionSummary                  `json:"positions"`
	AgeCurve     AgeCurve                           `json:"age_curve"`
	Categories   []Category                         `json:"categories"`
	Formations   []string                           `json:"formations"`
	BaseValues   map[models.CompetitiveTier]float64 `json:"base_values"`
}

// PositionSummary describes one position of a profile
type PositionSummary struct {
	Code            string   `json:"code"`
	ValueMultiplier float64  `json:"value_multiplier"`
	InjuryRisk      float64  `json:"injury_risk"`
	InjuryAreas     []string `json:"injury_areas"`
}

// Summary renders the profile for the API layer
func (p *Profile) Summary() Summary {
	s := Summary{
		Sport:        p.sport,
		MatchMinutes: p.matchMinutes,
		AgeCurve:     p.ageCurve,
		Categories:   p.Categories(),
		Formations:   p.Formations(),
		BaseValues:   make(map[models.CompetitiveTier]float64, len(p.baseValue)),
	}
	for _, code := range p.positions {
		s.Positions = append(s.Positions, PositionSummary{
			Code:            code,
			ValueMultiplier: p.positionValue[code],
			InjuryRisk:      p.injuryRisk[code],
			InjuryAreas:     p.CommonInjuryAreas(code),
		})
	}
	for tier, v := range p.baseValue {
		s.BaseValues[tier] = v
	}
	return s
}

func tiers(elite, professional, semiPro, amateur, youth float64) map[models.CompetitiveTier]float64 {
	return map[models.CompetitiveTier]float64{
		models.TierElite:        elite,
		models.TierProfessional: professional,
		models.TierSemiPro:      semiPro,
		models.TierAmateur:      amateur,
		models.TierYouth:        youth,
	}
}

func m(key, label string) Metric { return Metric{Key: key, Label: label} }

func inv(key, label string) Metric { return Metric{Key: key, Label: label, LowerIsBetter: true} }
