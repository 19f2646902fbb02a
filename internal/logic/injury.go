package logic

import (
	"fmt"
	"time"

	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// Injury model constants (additive-bonus variant)
const (
	injuryBaseRisk = 40.0

	playtimeHighMinutes = 300.0
	playtimeHighBonus   = 15.0
	playtimeMidMinutes  = 150.0
	playtimeMidBonus    = 10.0

	trainingHighLoad  = 450.0
	trainingHighBonus = 15.0
	trainingMidLoad   = 270.0
	trainingMidBonus  = 10.0

	veteranAgeMin   = 28
	veteranAgeMax   = 35
	veteranAgeBonus = 10.0
	youthAgeMax     = 20
	youthAgeBonus   = 8.0

	repeatInjuryBonus = 20.0
	singleInjuryBonus = 10.0

	seasonLoadSpike      = 0.20
	seasonLoadSpikeBonus = 10.0

	medicalReviewThreshold = 70.0
	poorSleepHours         = 7.0

	criticalRiskThreshold = 75.0
	highRiskThreshold     = 60.0
	mediumRiskThreshold   = 45.0
)

// Recommendation texts, emitted in this order when their rule fires
const (
	recMedicalAssessment = "Schedule a medical assessment before the next selection"
	recReduceIntensity   = "Reduce high-intensity training volume"
	recRotate            = "Rotate out of the next fixture or cap playing minutes"
	recPrevention        = "Enrol in an injury prevention programme"
	recSeasonLoad        = "Manage cumulative season load with planned rest weeks"
	recRecovery          = "Extend recovery windows between high-load sessions"
	recSleep             = "Improve sleep schedule to at least 7 hours"
	recMaintain          = "Maintain current training and match load"
)

// RiskLevelFor buckets a risk score; each band includes its lower bound
func RiskLevelFor(score float64) models.RiskLevel {
	switch {
	case score >= criticalRiskThreshold:
		return models.RiskCritical
	case score >= highRiskThreshold:
		return models.RiskHigh
	case score >= mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// AssessInjuryRisk runs the injury model. The returned assessment carries its
// confidence but not its identity or validity window; the engine stamps those.
func AssessInjuryRisk(s *models.PlayerSnapshot, sum WorkloadSummary, profile *registry.Profile) *models.InjuryRiskAssessment {
	score := injuryBaseRisk
	factors := []models.RiskFactor{{Name: "base", Contribution: injuryBaseRisk, Detail: "population baseline"}}
	add := func(name string, bonus float64, detail string) {
		score += bonus
		factors = append(factors, models.RiskFactor{Name: name, Contribution: bonus, Detail: detail})
	}

	var playtimeFired, trainingFired, historyFired, spikeFired bool

	switch {
	case sum.AcuteLoadMinutes > playtimeHighMinutes:
		add("match_load", playtimeHighBonus, fmt.Sprintf("%.0f minutes played in 7 days", sum.AcuteLoadMinutes))
		playtimeFired = true
	case sum.AcuteLoadMinutes > playtimeMidMinutes:
		add("match_load", playtimeMidBonus, fmt.Sprintf("%.0f minutes played in 7 days", sum.AcuteLoadMinutes))
		playtimeFired = true
	}

	switch {
	case sum.AcuteTrainingLoad > trainingHighLoad:
		add("training_load", trainingHighBonus, fmt.Sprintf("%.0f training minute-equivalents in 7 days", sum.AcuteTrainingLoad))
		trainingFired = true
	case sum.AcuteTrainingLoad > trainingMidLoad:
		add("training_load", trainingMidBonus, fmt.Sprintf("%.0f training minute-equivalents in 7 days", sum.AcuteTrainingLoad))
		trainingFired = true
	}

	// Age 0 means the data layer did not know it
	switch {
	case s.Age > veteranAgeMin && s.Age < veteranAgeMax:
		add("age", veteranAgeBonus, fmt.Sprintf("age %d in veteran band", s.Age))
	case s.Age > 0 && s.Age < youthAgeMax:
		add("age", youthAgeBonus, fmt.Sprintf("age %d still developing", s.Age))
	}

	switch {
	case sum.InjuriesLastYear >= 2:
		add("injury_history", repeatInjuryBonus, fmt.Sprintf("%d injuries in the last 365 days", sum.InjuriesLastYear))
		historyFired = true
	case sum.InjuriesLastYear == 1:
		add("injury_history", singleInjuryBonus, "1 injury in the last 365 days")
		historyFired = true
	}

	if sum.SeasonLoadIncrease > seasonLoadSpike {
		add("season_load", seasonLoadSpikeBonus, fmt.Sprintf("season minutes up %.0f%%", sum.SeasonLoadIncrease*100))
		spikeFired = true
	}

	score = clamp(score, 0, 100)
	level := RiskLevelFor(score)

	var bodyParts []models.BodyPartRisk
	seen := make(map[string]bool)
	appendAreas := func(areas []string, lvl models.RiskLevel, reason string) {
		for _, area := range areas {
			if seen[area] {
				continue
			}
			seen[area] = true
			bodyParts = append(bodyParts, models.BodyPartRisk{BodyPart: area, Level: lvl, Reason: reason})
		}
	}
	areas := profile.CommonInjuryAreas(s.Position)
	if playtimeFired {
		appendAreas(areas, level, "high match load")
	}
	if trainingFired {
		appendAreas(areas, level, "high training load")
	}
	if historyFired {
		appendAreas(areas, level, "recent injury history")
	}
	if spikeFired {
		appendAreas(areas, level, "season load increase")
	}
	priorLevel := models.RiskMedium
	if historyFired {
		priorLevel = models.RiskHigh
	}
	appendAreas(sum.InjuredBodyParts, priorLevel, "previous injury")

	var recs []string
	if score >= medicalReviewThreshold {
		recs = append(recs, recMedicalAssessment)
	}
	if sum.AcuteTrainingLoad > trainingHighLoad {
		recs = append(recs, recReduceIntensity)
	}
	if sum.AcuteLoadMinutes > playtimeHighMinutes {
		recs = append(recs, recRotate)
	}
	if sum.InjuriesLastYear >= 2 {
		recs = append(recs, recPrevention)
	}
	if spikeFired {
		recs = append(recs, recSeasonLoad)
	}
	if s.Age > veteranAgeMin && s.Age < veteranAgeMax && level != models.RiskLow {
		recs = append(recs, recRecovery)
	}
	if s.AvgSleepHours > 0 && s.AvgSleepHours < poorSleepHours {
		recs = append(recs, recSleep)
	}
	if len(recs) == 0 {
		recs = append(recs, recMaintain)
	}

	confidence := workloadConfidence(sum)
	return &models.InjuryRiskAssessment{
		AssessmentMeta: models.AssessmentMeta{
			PlayerID:        s.ID,
			Confidence:      confidence,
			ConfidenceScore: confidence.Score(),
			DataWarnings:    dataWarnings(sum),
		},
		Sport:           s.Sport,
		Position:        s.Position,
		RiskScore:       round2(score),
		RiskLevel:       level,
		Factors:         factors,
		BodyParts:       bodyParts,
		Recommendations: recs,
		AcuteLoad:       sum.AcuteLoadMinutes,
		ChronicLoad:     sum.ChronicLoadMinutes,
		TrainingLoad:    sum.AcuteTrainingLoad,
	}
}

// injuryTTL is how long an injury assessment stays valid
const injuryTTL = time.Hour
