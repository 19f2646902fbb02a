package registry

import "github.com/pitchconnect/analytics-api/internal/models"

// Cricket reuses the common fields: Goals counts wickets and Assists counts
// catches, so contribution figures stay comparable across sports.
var cricket = newProfile(profileSpec{
	sport:        models.SportCricket,
	matchMinutes: 420,
	ageCurve: AgeCurve{
		PeakStart:             27,
		PeakEnd:               33,
		DevelopmentMultiplier: 0.03,
		DeclineRate:           0.06,
		YouthCeiling:          1.20,
		Floor:                 0.45,
	},
	positions: []positionSpec{
		{code: "OPENING_BATSMAN", value: 1.10, injury: 35, areas: []string{"hand", "hamstring", "back"}},
		{code: "BATSMAN", value: 1.05, injury: 35, areas: []string{"hand", "hamstring", "back"}},
		{code: "WICKET_KEEPER", value: 1.00, injury: 40, areas: []string{"finger", "knee", "back"}},
		{code: "ALL_ROUNDER", value: 1.25, injury: 48, areas: []string{"back", "side", "shoulder"}},
		{code: "FAST_BOWLER", value: 1.15, injury: 60, areas: []string{"back", "side", "ankle"}},
		{code: "SPIN_BOWLER", value: 1.00, injury: 40, areas: []string{"finger", "shoulder", "back"}},
	},
	categories: []Category{
		{Name: "Batting", Weight: 0.35, Metrics: []Metric{
			m("runs", "Runs"), m("strike_rate", "Strike rate"), m("boundaries", "Boundaries"),
		}},
		{Name: "Bowling", Weight: 0.35, Metrics: []Metric{
			m("goals", "Wickets"), inv("economy", "Economy rate"), m("dot_balls", "Dot balls"),
		}},
		{Name: "Fielding", Weight: 0.15, Metrics: []Metric{
			m("assists", "Catches"), m("run_outs", "Run outs"), inv("dropped_catches", "Dropped catches"),
		}},
		{Name: "Overall", Weight: 0.15, Metrics: []Metric{
			m("rating", "Match rating"), m("minutes", "Minutes"),
		}},
	},
	formations: []string{"Attacking field", "Defensive field", "Slip cordon", "Leg-side trap", "Ring field", "Powerplay field"},
	baseValue:  tiers(3_000_000, 500_000, 40_000, 3_000, 20_000),
})
