package models

import (
	"fmt"
	"strings"
)

// Sport identifies one of the supported sports
type Sport string

const (
	SportFootball         Sport = "FOOTBALL"
	SportFutsal           Sport = "FUTSAL"
	SportBeachFootball    Sport = "BEACH_FOOTBALL"
	SportRugby            Sport = "RUGBY"
	SportAmericanFootball Sport = "AMERICAN_FOOTBALL"
	SportAustralianRules  Sport = "AUSTRALIAN_RULES"
	SportGaelicFootball   Sport = "GAELIC_FOOTBALL"
	SportBasketball       Sport = "BASKETBALL"
	SportNetball          Sport = "NETBALL"
	SportHockey           Sport = "HOCKEY"
	SportLacrosse         Sport = "LACROSSE"
	SportCricket          Sport = "CRICKET"
)

// AllSports lists every sport the registry must cover
var AllSports = []Sport{
	SportFootball,
	SportFutsal,
	SportBeachFootball,
	SportRugby,
	SportAmericanFootball,
	SportAustralianRules,
	SportGaelicFootball,
	SportBasketball,
	SportNetball,
	SportHockey,
	SportLacrosse,
	SportCricket,
}

// ParseSport normalizes a user supplied sport code
func ParseSport(s string) (Sport, error) {
	candidate := Sport(strings.ToUpper(strings.TrimSpace(s)))
	for _, sport := range AllSports {
		if sport == candidate {
			return sport, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", s)
}

// CompetitiveTier is the level of competition a player's team plays at
type CompetitiveTier string

const (
	TierElite        CompetitiveTier = "ELITE"
	TierProfessional CompetitiveTier = "PROFESSIONAL"
	TierSemiPro      CompetitiveTier = "SEMI_PRO"
	TierAmateur      CompetitiveTier = "AMATEUR"
	TierYouth        CompetitiveTier = "YOUTH"
)

// AllTiers lists the competitive tiers in descending order
var AllTiers = []CompetitiveTier{TierElite, TierProfessional, TierSemiPro, TierAmateur, TierYouth}
