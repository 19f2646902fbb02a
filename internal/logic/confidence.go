package logic

import "github.com/pitchconnect/analytics-api/internal/models"

// Confidence thresholds. Confidence is derived from how much history backs an
// assessment and how consistent it is, never drawn at random.
const (
	highConfidenceMatches       = 20
	highConfidenceConsistency   = 60.0
	mediumConfidenceMatches     = 8
	mediumConfidenceConsistency = 40.0
	highConfidenceSessions      = 10
	mediumConfidenceSamples     = 10
)

// formConfidence grades rating-based assessments by sample size and consistency
func formConfidence(sum WorkloadSummary) models.ConfidenceTier {
	if sum.InsufficientData {
		return models.ConfidenceLow
	}
	switch {
	case sum.MatchesObserved >= highConfidenceMatches && sum.Consistency > highConfidenceConsistency:
		return models.ConfidenceHigh
	case sum.MatchesObserved >= mediumConfidenceMatches && sum.Consistency > mediumConfidenceConsistency:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// workloadConfidence grades injury assessments by matches and sessions observed
func workloadConfidence(sum WorkloadSummary) models.ConfidenceTier {
	switch {
	case sum.InsufficientData:
		return models.ConfidenceLow
	case sum.MatchesObserved >= highConfidenceMatches && sum.TrainingObserved >= highConfidenceSessions:
		return models.ConfidenceHigh
	case sum.MatchesObserved+sum.TrainingObserved >= mediumConfidenceSamples:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func dataWarnings(sum WorkloadSummary) []string {
	if sum.InsufficientData {
		return []string{ErrInsufficientData.Error()}
	}
	return nil
}
