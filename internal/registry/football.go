package registry

import "github.com/pitchconnect/analytics-api/internal/models"

var footballCategories = []Category{
	{Name: "Attacking", Weight: 0.25, Metrics: []Metric{
		m("goals", "Goals"), m("shots", "Shots"), m("shots_on_target", "Shots on target"), m("xg", "Expected goals"),
	}},
	{Name: "Playmaking", Weight: 0.20, Metrics: []Metric{
		m("assists", "Assists"), m("key_passes", "Key passes"), m("pass_accuracy", "Pass accuracy"),
	}},
	{Name: "Defensive", Weight: 0.20, Metrics: []Metric{
		m("tackles", "Tackles"), m("interceptions", "Interceptions"), m("clearances", "Clearances"),
	}},
	{Name: "Physical", Weight: 0.15, Metrics: []Metric{
		m("minutes", "Minutes"), m("distance_km", "Distance covered"), m("duels_won", "Duels won"),
	}},
	{Name: "Technical", Weight: 0.20, Metrics: []Metric{
		m("rating", "Match rating"), m("dribbles", "Successful dribbles"), inv("dispossessed", "Dispossessed"),
	}},
}

var football = newProfile(profileSpec{
	sport:        models.SportFootball,
	matchMinutes: 90,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               29,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.08,
		YouthCeiling:          1.25,
		Floor:                 0.35,
	},
	positions: []positionSpec{
		{code: "GOALKEEPER", value: 0.80, injury: 30, areas: []string{"shoulder", "finger", "knee"}},
		{code: "CENTRE_BACK", value: 0.90, injury: 45, areas: []string{"hamstring", "ankle", "head"}},
		{code: "FULL_BACK", value: 0.90, injury: 50, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "WING_BACK", value: 0.95, injury: 55, areas: []string{"hamstring", "calf", "ankle"}},
		{code: "DEFENSIVE_MIDFIELDER", value: 0.95, injury: 48, areas: []string{"knee", "ankle", "hamstring"}},
		{code: "CENTRAL_MIDFIELDER", value: 1.00, injury: 50, areas: []string{"hamstring", "groin", "calf"}},
		{code: "ATTACKING_MIDFIELDER", value: 1.15, injury: 48, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "WINGER", value: 1.15, injury: 55, areas: []string{"hamstring", "ankle", "calf"}},
		{code: "STRIKER", value: 1.30, injury: 52, areas: []string{"hamstring", "groin", "ankle"}},
		{code: "CENTRE_FORWARD", value: 1.25, injury: 50, areas: []string{"hamstring", "knee", "ankle"}},
	},
	categories: footballCategories,
	formations: []string{"4-4-2", "4-3-3", "4-2-3-1", "3-5-2", "3-4-3", "5-3-2", "4-1-4-1", "4-5-1"},
	baseValue:  tiers(25_000_000, 4_000_000, 150_000, 10_000, 75_000),
})

var smallSidedCategories = []Category{
	{Name: "Attacking", Weight: 0.30, Metrics: []Metric{
		m("goals", "Goals"), m("shots", "Shots"), m("shots_on_target", "Shots on target"),
	}},
	{Name: "Playmaking", Weight: 0.25, Metrics: []Metric{
		m("assists", "Assists"), m("passes_completed", "Passes completed"),
	}},
	{Name: "Defensive", Weight: 0.20, Metrics: []Metric{
		m("tackles", "Tackles"), m("interceptions", "Interceptions"), m("saves", "Saves"),
	}},
	{Name: "Physical", Weight: 0.25, Metrics: []Metric{
		m("minutes", "Minutes"), m("rating", "Match rating"),
	}},
}

var futsal = newProfile(profileSpec{
	sport:        models.SportFutsal,
	matchMinutes: 40,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               30,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.07,
		YouthCeiling:          1.20,
		Floor:                 0.40,
	},
	positions: []positionSpec{
		{code: "GOALKEEPER", value: 0.85, injury: 32, areas: []string{"shoulder", "finger", "hip"}},
		{code: "FIXO", value: 0.95, injury: 45, areas: []string{"ankle", "knee", "groin"}},
		{code: "ALA", value: 1.10, injury: 50, areas: []string{"ankle", "hamstring", "groin"}},
		{code: "PIVOT", value: 1.20, injury: 48, areas: []string{"knee", "ankle", "hamstring"}},
		{code: "UNIVERSAL", value: 1.05, injury: 47, areas: []string{"ankle", "groin", "calf"}},
	},
	categories: smallSidedCategories,
	formations: []string{"3-1", "2-2", "4-0", "1-2-1"},
	baseValue:  tiers(600_000, 120_000, 20_000, 2_000, 8_000),
})

var beachFootball = newProfile(profileSpec{
	sport:        models.SportBeachFootball,
	matchMinutes: 36,
	ageCurve: AgeCurve{
		PeakStart:             25,
		PeakEnd:               32,
		DevelopmentMultiplier: 0.03,
		DeclineRate:           0.06,
		YouthCeiling:          1.15,
		Floor:                 0.45,
	},
	positions: []positionSpec{
		{code: "GOALKEEPER", value: 0.90, injury: 35, areas: []string{"shoulder", "wrist", "back"}},
		{code: "DEFENDER", value: 0.95, injury: 42, areas: []string{"ankle", "knee", "back"}},
		{code: "WINGER", value: 1.10, injury: 45, areas: []string{"ankle", "calf", "groin"}},
		{code: "PIVOT", value: 1.20, injury: 46, areas: []string{"back", "knee", "ankle"}},
	},
	categories: smallSidedCategories,
	formations: []string{"1-2-1", "2-1-1", "1-1-2", "2-2"},
	baseValue:  tiers(250_000, 60_000, 10_000, 1_500, 5_000),
})
