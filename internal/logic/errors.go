package logic

import "errors"

// Error taxonomy shared by the engine, the data layer and the HTTP handlers.
// Wrap with fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	// ErrPlayerNotFound means the data layer could not resolve a player id
	ErrPlayerNotFound = errors.New("player not found")
	// ErrTeamNotFound means the data layer could not resolve a team id
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidComparison rejects comparisons across sports
	ErrInvalidComparison = errors.New("invalid comparison")
	// ErrInsufficientData is never returned; its text marks degraded assessments
	ErrInsufficientData = errors.New("insufficient data: population defaults applied")
	// ErrCacheUnavailable is logged and bypassed
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrUpstreamUnavailable is a retryable data-store failure
	ErrUpstreamUnavailable = errors.New("upstream data store unavailable")
	// ErrUnsupportedCurrency rejects currency codes outside the rate table
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrInvalidHorizon rejects unknown prediction horizons
	ErrInvalidHorizon = errors.New("invalid horizon")
	// ErrUnsupportedSport is returned when a snapshot names a sport the registry lacks
	ErrUnsupportedSport = errors.New("unsupported sport")
)

// IsNotFound reports whether err belongs to the NotFound family
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrTeamNotFound)
}
