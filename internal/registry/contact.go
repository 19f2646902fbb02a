package registry

import "github.com/pitchconnect/analytics-api/internal/models"

var rugby = newProfile(profileSpec{
	sport:        models.SportRugby,
	matchMinutes: 80,
	ageCurve: AgeCurve{
		PeakStart:             26,
		PeakEnd:               31,
		DevelopmentMultiplier: 0.035,
		DeclineRate:           0.09,
		YouthCeiling:          1.20,
		Floor:                 0.35,
	},
	positions: []positionSpec{
		{code: "LOOSEHEAD_PROP", value: 1.00, injury: 58, areas: []string{"neck", "shoulder", "knee"}},
		{code: "HOOKER", value: 1.00, injury: 58, areas: []string{"neck", "shoulder", "back"}},
		{code: "TIGHTHEAD_PROP", value: 1.10, injury: 60, areas: []string{"neck", "shoulder", "knee"}},
		{code: "LOCK", value: 0.95, injury: 55, areas: []string{"shoulder", "knee", "ankle"}},
		{code: "BLINDSIDE_FLANKER", value: 0.95, injury: 60, areas: []string{"shoulder", "head", "knee"}},
		{code: "OPENSIDE_FLANKER", value: 1.00, injury: 62, areas: []string{"shoulder", "head", "neck"}},
		{code: "NUMBER_EIGHT", value: 1.05, injury: 58, areas: []string{"knee", "shoulder", "ankle"}},
		{code: "SCRUM_HALF", value: 1.10, injury: 48, areas: []string{"hamstring", "ankle", "shoulder"}},
		{code: "FLY_HALF", value: 1.25, injury: 50, areas: []string{"hamstring", "ankle", "head"}},
		{code: "INSIDE_CENTRE", value: 1.05, injury: 55, areas: []string{"shoulder", "head", "knee"}},
		{code: "OUTSIDE_CENTRE", value: 1.05, injury: 54, areas: []string{"shoulder", "hamstring", "knee"}},
		{code: "WING", value: 1.00, injury: 48, areas: []string{"hamstring", "ankle", "shoulder"}},
		{code: "FULLBACK", value: 1.05, injury: 50, areas: []string{"hamstring", "shoulder", "ankle"}},
	},
	categories: []Category{
		{Name: "Attacking", Weight: 0.25, Metrics: []Metric{
			m("goals", "Tries"), m("carries", "Carries"), m("metres_gained", "Metres gained"), m("line_breaks", "Line breaks"),
		}},
		{Name: "Defensive", Weight: 0.25, Metrics: []Metric{
			m("tackles", "Tackles"), m("tackle_success", "Tackle success"), m("turnovers_won", "Turnovers won"),
		}},
		{Name: "Set Piece", Weight: 0.15, Metrics: []Metric{
			m("lineouts_won", "Lineouts won"), m("scrums_won", "Scrums won"),
		}},
		{Name: "Kicking", Weight: 0.15, Metrics: []Metric{
			m("points_kicked", "Points kicked"), m("kick_metres", "Kick metres"),
		}},
		{Name: "Physical", Weight: 0.20, Metrics: []Metric{
			m("minutes", "Minutes"), m("rating", "Match rating"), inv("penalties_conceded", "Penalties conceded"),
		}},
	},
	formations: []string{"1-3-3-1", "2-4-2", "3-4-1", "4-4 attack shape", "pod system", "blitz defence", "drift defence"},
	baseValue:  tiers(1_200_000, 400_000, 40_000, 3_000, 15_000),
})

var americanFootball = newProfile(profileSpec{
	sport:        models.SportAmericanFootball,
	matchMinutes: 60,
	ageCurve: AgeCurve{
		PeakStart:             25,
		PeakEnd:               29,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.10,
		YouthCeiling:          1.20,
		Floor:                 0.30,
	},
	positions: []positionSpec{
		{code: "QUARTERBACK", value: 1.50, injury: 45, areas: []string{"shoulder", "knee", "ankle"}},
		{code: "RUNNING_BACK", value: 1.00, injury: 62, areas: []string{"knee", "ankle", "hamstring"}},
		{code: "WIDE_RECEIVER", value: 1.15, injury: 52, areas: []string{"hamstring", "ankle", "head"}},
		{code: "TIGHT_END", value: 0.95, injury: 55, areas: []string{"knee", "ankle", "shoulder"}},
		{code: "OFFENSIVE_LINEMAN", value: 0.95, injury: 60, areas: []string{"knee", "back", "hand"}},
		{code: "DEFENSIVE_LINEMAN", value: 1.05, injury: 60, areas: []string{"knee", "shoulder", "back"}},
		{code: "LINEBACKER", value: 1.00, injury: 58, areas: []string{"head", "shoulder", "knee"}},
		{code: "CORNERBACK", value: 1.05, injury: 52, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "SAFETY", value: 0.95, injury: 54, areas: []string{"head", "shoulder", "hamstring"}},
		{code: "KICKER", value: 0.60, injury: 25, areas: []string{"groin", "hip", "hamstring"}},
		{code: "PUNTER", value: 0.55, injury: 25, areas: []string{"groin", "hip", "hamstring"}},
	},
	categories: []Category{
		{Name: "Passing", Weight: 0.20, Metrics: []Metric{
			m("passing_yards", "Passing yards"), m("touchdown_passes", "Touchdown passes"), inv("interceptions_thrown", "Interceptions thrown"),
		}},
		{Name: "Rushing", Weight: 0.20, Metrics: []Metric{
			m("rushing_yards", "Rushing yards"), m("goals", "Touchdowns"),
		}},
		{Name: "Receiving", Weight: 0.20, Metrics: []Metric{
			m("receptions", "Receptions"), m("receiving_yards", "Receiving yards"),
		}},
		{Name: "Defense", Weight: 0.25, Metrics: []Metric{
			m("tackles", "Tackles"), m("sacks", "Sacks"), m("interceptions", "Interceptions"),
		}},
		{Name: "Special Teams", Weight: 0.15, Metrics: []Metric{
			m("field_goals", "Field goals"), m("return_yards", "Return yards"),
		}},
	},
	formations: []string{"I-Formation", "Shotgun", "Pistol", "Singleback", "Spread", "4-3 Defense", "3-4 Defense", "Nickel", "Dime"},
	baseValue:  tiers(12_000_000, 2_000_000, 80_000, 5_000, 30_000),
})

var australianRules = newProfile(profileSpec{
	sport:        models.SportAustralianRules,
	matchMinutes: 80,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               29,
		DevelopmentMultiplier: 0.04,
		DeclineRate:           0.08,
		YouthCeiling:          1.25,
		Floor:                 0.35,
	},
	positions: []positionSpec{
		{code: "FULL_FORWARD", value: 1.20, injury: 50, areas: []string{"hamstring", "groin", "knee"}},
		{code: "CENTRE_HALF_FORWARD", value: 1.10, injury: 52, areas: []string{"hamstring", "knee", "shoulder"}},
		{code: "FORWARD_POCKET", value: 1.05, injury: 48, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "WING", value: 1.00, injury: 55, areas: []string{"hamstring", "calf", "ankle"}},
		{code: "CENTRE", value: 1.10, injury: 55, areas: []string{"hamstring", "calf", "groin"}},
		{code: "RUCK", value: 1.05, injury: 58, areas: []string{"knee", "shoulder", "back"}},
		{code: "ROVER", value: 1.10, injury: 55, areas: []string{"hamstring", "head", "ankle"}},
		{code: "RUCK_ROVER", value: 1.05, injury: 55, areas: []string{"hamstring", "shoulder", "ankle"}},
		{code: "CENTRE_HALF_BACK", value: 0.95, injury: 50, areas: []string{"knee", "shoulder", "hamstring"}},
		{code: "BACK_POCKET", value: 0.90, injury: 48, areas: []string{"ankle", "hamstring", "head"}},
		{code: "FULL_BACK", value: 0.90, injury: 48, areas: []string{"knee", "ankle", "shoulder"}},
	},
	categories: []Category{
		{Name: "Scoring", Weight: 0.25, Metrics: []Metric{
			m("goals", "Goals"), m("behinds", "Behinds"), m("marks_inside_50", "Marks inside 50"),
		}},
		{Name: "Possession", Weight: 0.25, Metrics: []Metric{
			m("disposals", "Disposals"), m("kicks", "Kicks"), m("handballs", "Handballs"), inv("clangers", "Clangers"),
		}},
		{Name: "Defensive", Weight: 0.20, Metrics: []Metric{
			m("tackles", "Tackles"), m("spoils", "Spoils"), m("rebound_50s", "Rebound 50s"),
		}},
		{Name: "Contest", Weight: 0.15, Metrics: []Metric{
			m("hitouts", "Hitouts"), m("contested_possessions", "Contested possessions"), m("clearances", "Clearances"),
		}},
		{Name: "Physical", Weight: 0.15, Metrics: []Metric{
			m("minutes", "Minutes"), m("rating", "Match rating"),
		}},
	},
	formations: []string{"6-6-6 centre bounce", "Flooding", "Zone defence", "Forward press", "Loose man in defence"},
	baseValue:  tiers(1_500_000, 600_000, 50_000, 3_000, 20_000),
})

var gaelicFootball = newProfile(profileSpec{
	sport:        models.SportGaelicFootball,
	matchMinutes: 70,
	ageCurve: AgeCurve{
		PeakStart:             24,
		PeakEnd:               30,
		DevelopmentMultiplier: 0.035,
		DeclineRate:           0.07,
		YouthCeiling:          1.20,
		Floor:                 0.40,
	},
	positions: []positionSpec{
		{code: "GOALKEEPER", value: 0.85, injury: 30, areas: []string{"finger", "shoulder", "knee"}},
		{code: "FULL_BACK", value: 0.90, injury: 48, areas: []string{"hamstring", "knee", "ankle"}},
		{code: "CORNER_BACK", value: 0.90, injury: 48, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "CENTRE_BACK", value: 0.95, injury: 50, areas: []string{"knee", "shoulder", "hamstring"}},
		{code: "WING_BACK", value: 1.00, injury: 52, areas: []string{"hamstring", "calf", "ankle"}},
		{code: "MIDFIELDER", value: 1.10, injury: 55, areas: []string{"hamstring", "knee", "shoulder"}},
		{code: "CENTRE_FORWARD", value: 1.15, injury: 50, areas: []string{"hamstring", "knee", "groin"}},
		{code: "WING_FORWARD", value: 1.10, injury: 50, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "CORNER_FORWARD", value: 1.15, injury: 48, areas: []string{"hamstring", "ankle", "groin"}},
		{code: "FULL_FORWARD", value: 1.20, injury: 48, areas: []string{"hamstring", "groin", "knee"}},
	},
	categories: []Category{
		{Name: "Scoring", Weight: 0.30, Metrics: []Metric{
			m("goals", "Goals"), m("points_scored", "Points"), m("shots", "Shots"), inv("wides", "Wides"),
		}},
		{Name: "Playmaking", Weight: 0.20, Metrics: []Metric{
			m("assists", "Assists"), m("kick_passes", "Kick passes"), m("hand_passes", "Hand passes"),
		}},
		{Name: "Defensive", Weight: 0.25, Metrics: []Metric{
			m("tackles", "Tackles"), m("turnovers_won", "Turnovers won"), m("blocks", "Blocks"),
		}},
		{Name: "Physical", Weight: 0.25, Metrics: []Metric{
			m("minutes", "Minutes"), m("kickouts_won", "Kickouts won"), m("rating", "Match rating"),
		}},
	},
	formations: []string{"3-3-2-3-3", "Sweeper system", "Blanket defence", "Two-man full forward line", "Kickout press"},
	baseValue:  tiers(150_000, 60_000, 15_000, 2_000, 5_000),
})
