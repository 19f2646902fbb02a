package registry

import "github.com/pitchconnect/analytics-api/internal/models"

var hockey = newProfile(profileSpec{
	sport:        models.SportHockey,
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
		{code: "GOALKEEPER", value: 0.90, injury: 35, areas: []string{"knee", "hip", "hand"}},
		{code: "SWEEPER", value: 0.95, injury: 42, areas: []string{"back", "hamstring", "ankle"}},
		{code: "DEFENDER", value: 0.95, injury: 45, areas: []string{"back", "hamstring", "hand"}},
		{code: "MIDFIELDER", value: 1.05, injury: 48, areas: []string{"back", "hamstring", "ankle"}},
		{code: "FORWARD", value: 1.20, injury: 46, areas: []string{"hamstring", "ankle", "hand"}},
	},
	categories: []Category{
		{Name: "Attacking", Weight: 0.30, Metrics: []Metric{
			m("goals", "Goals"), m("shots", "Shots"), m("penalty_corners_won", "Penalty corners won"),
		}},
		{Name: "Playmaking", Weight: 0.25, Metrics: []Metric{
			m("assists", "Assists"), m("passes_completed", "Passes completed"), m("circle_entries", "Circle entries"),
		}},
		{Name: "Defensive", Weight: 0.25, Metrics: []Metric{
			m("tackles", "Tackles"), m("interceptions", "Interceptions"), inv("cards", "Cards"),
		}},
		{Name: "Physical", Weight: 0.20, Metrics: []Metric{
			m("minutes", "Minutes"), m("rating", "Match rating"),
		}},
	},
	formations: []string{"4-3-3", "3-3-1-3", "4-4-2", "3-4-3", "5-3-2"},
	baseValue:  tiers(300_000, 80_000, 12_000, 1_500, 5_000),
})

var lacrosse = newProfile(profileSpec{
	sport:        models.SportLacrosse,
	matchMinutes: 60,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               29,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.08,
		YouthCeiling:          1.20,
		Floor:                 0.35,
	},
	positions: []positionSpec{
		{code: "ATTACK", value: 1.20, injury: 48, areas: []string{"ankle", "knee", "shoulder"}},
		{code: "MIDFIELD", value: 1.10, injury: 52, areas: []string{"hamstring", "knee", "ankle"}},
		{code: "DEFENSE", value: 0.95, injury: 50, areas: []string{"shoulder", "knee", "wrist"}},
		{code: "GOALIE", value: 0.95, injury: 38, areas: []string{"hand", "knee", "groin"}},
		{code: "LONG_STICK_MIDFIELDER", value: 1.00, injury: 50, areas: []string{"shoulder", "hamstring", "ankle"}},
		{code: "FACE_OFF_SPECIALIST", value: 1.00, injury: 55, areas: []string{"wrist", "knee", "back"}},
	},
	categories: []Category{
		{Name: "Offense", Weight: 0.30, Metrics: []Metric{
			m("goals", "Goals"), m("assists", "Assists"), m("shots_on_goal", "Shots on goal"),
		}},
		{Name: "Possession", Weight: 0.25, Metrics: []Metric{
			m("ground_balls", "Ground balls"), m("faceoffs_won", "Faceoffs won"), inv("turnovers", "Turnovers"),
		}},
		{Name: "Defense", Weight: 0.25, Metrics: []Metric{
			m("caused_turnovers", "Caused turnovers"), m("saves", "Saves"),
		}},
		{Name: "Physical", Weight: 0.20, Metrics: []Metric{
			m("minutes", "Minutes"), m("rating", "Match rating"),
		}},
	},
	formations: []string{"2-3-1", "1-4-1", "2-2-2", "3-3", "1-3-2"},
	baseValue:  tiers(250_000, 70_000, 10_000, 1_500, 5_000),
})
