package registry

import "github.com/pitchconnect/analytics-api/internal/models"

var basketball = newProfile(profileSpec{
	sport:        models.SportBasketball,
	matchMinutes: 48,
	ageCurve: AgeCurve{
		PeakStart:             25,
		PeakEnd:               30,
		DevelopmentMultiplier: 0.05,
		DeclineRate:           0.08,
		YouthCeiling:          1.30,
		Floor:                 0.35,
	},
	positions: []positionSpec{
		{code: "POINT_GUARD", value: 1.15, injury: 45, areas: []string{"ankle", "knee", "hamstring"}},
		{code: "SHOOTING_GUARD", value: 1.10, injury: 45, areas: []string{"ankle", "knee", "back"}},
		{code: "SMALL_FORWARD", value: 1.10, injury: 48, areas: []string{"ankle", "knee", "achilles"}},
		{code: "POWER_FORWARD", value: 1.00, injury: 50, areas: []string{"knee", "back", "ankle"}},
		{code: "CENTER", value: 1.05, injury: 52, areas: []string{"knee", "back", "foot"}},
	},
	categories: []Category{
		{Name: "Scoring", Weight: 0.30, Metrics: []Metric{
			m("points", "Points"), m("field_goal_pct", "Field goal %"), m("three_pointers", "Three pointers"),
		}},
		{Name: "Playmaking", Weight: 0.20, Metrics: []Metric{
			m("assists", "Assists"), inv("turnovers", "Turnovers"),
		}},
		{Name: "Rebounding", Weight: 0.15, Metrics: []Metric{
			m("rebounds", "Rebounds"), m("offensive_rebounds", "Offensive rebounds"),
		}},
		{Name: "Defense", Weight: 0.20, Metrics: []Metric{
			m("steals", "Steals"), m("blocks", "Blocks"), inv("fouls", "Personal fouls"),
		}},
		{Name: "Efficiency", Weight: 0.15, Metrics: []Metric{
			m("rating", "Match rating"), m("minutes", "Minutes"), m("plus_minus", "Plus/minus"),
		}},
	},
	formations: []string{"Man-to-man", "2-3 zone", "1-3-1 zone", "1-2-2 zone", "Box-and-one", "Triangle", "Pick and roll"},
	baseValue:  tiers(10_000_000, 1_500_000, 80_000, 5_000, 30_000),
})

var netball = newProfile(profileSpec{
	sport:        models.SportNetball,
	matchMinutes: 60,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               30,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.07,
		YouthCeiling:          1.20,
		Floor:                 0.40,
	},
	positions: []positionSpec{
		{code: "GOAL_SHOOTER", value: 1.20, injury: 45, areas: []string{"ankle", "knee", "finger"}},
		{code: "GOAL_ATTACK", value: 1.15, injury: 48, areas: []string{"ankle", "knee", "calf"}},
		{code: "WING_ATTACK", value: 1.05, injury: 50, areas: []string{"ankle", "knee", "hamstring"}},
		{code: "CENTRE", value: 1.10, injury: 52, areas: []string{"knee", "ankle", "calf"}},
		{code: "WING_DEFENCE", value: 0.95, injury: 50, areas: []string{"ankle", "knee", "hamstring"}},
		{code: "GOAL_DEFENCE", value: 1.00, injury: 50, areas: []string{"knee", "ankle", "finger"}},
		{code: "GOAL_KEEPER", value: 1.00, injury: 48, areas: []string{"knee", "ankle", "finger"}},
	},
	categories: []Category{
		{Name: "Shooting", Weight: 0.30, Metrics: []Metric{
			m("goals", "Goals"), m("shooting_pct", "Shooting %"),
		}},
		{Name: "Feeding", Weight: 0.25, Metrics: []Metric{
			m("assists", "Goal assists"), m("feeds", "Feeds"), m("centre_pass_receives", "Centre pass receives"),
		}},
		{Name: "Defending", Weight: 0.25, Metrics: []Metric{
			m("intercepts", "Intercepts"), m("deflections", "Deflections"), m("rebounds", "Rebounds"), inv("penalties", "Penalties"),
		}},
		{Name: "Physical", Weight: 0.20, Metrics: []Metric{
			m("minutes", "Minutes"), m("rating", "Match rating"),
		}},
	},
	formations: []string{"Standard centre pass", "Zone defence", "Player-on-player", "Split circle", "Front cut"},
	baseValue:  tiers(200_000, 60_000, 10_000, 1_000, 4_000),
})
