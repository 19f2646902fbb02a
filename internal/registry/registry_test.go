package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/pitchconnect/analytics-api/internal/models"
)

func TestGet_CoversEverySport(t *testing.T) {
	if len(models.AllSports) != 12 {
		t.Fatalf("expected 12 sports, got %d", len(models.AllSports))
	}
	for _, sport := range models.AllSports {
		t.Run(string(sport), func(t *testing.T) {
			p, err := Get(sport)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", sport, err)
			}
			if p.Sport() != sport {
				t.Errorf("profile sport = %s, want %s", p.Sport(), sport)
			}
			if len(p.Positions()) == 0 {
				t.Error("profile has no positions")
			}
			if len(p.Formations()) == 0 {
				t.Error("profile has no formations")
			}
			if p.MatchMinutes() <= 0 {
				t.Error("profile has no match length")
			}

			var weights float64
			for _, c := range p.Categories() {
				if len(c.Metrics) == 0 {
					t.Errorf("category %s has no metrics", c.Name)
				}
				weights += c.Weight
			}
			if math.Abs(weights-1.0) > 1e-9 {
				t.Errorf("category weights sum to %v, want 1.0", weights)
			}

			for _, tier := range models.AllTiers {
				if p.BaseValue(tier) <= 0 {
					t.Errorf("base value for tier %s is not positive", tier)
				}
			}

			floor := p.AgeCurve().Floor
			if floor < 0.3 || floor > 0.5 {
				t.Errorf("age curve floor %v outside [0.3, 0.5]", floor)
			}
		})
	}
}

func TestGet_UnknownSport(t *testing.T) {
	_, err := Get(models.Sport("QUIDDITCH"))
	if !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("expected ErrUnknownSport, got %v", err)
	}
}

func TestPositionLookups(t *testing.T) {
	p, _ := Get(models.SportFootball)

	tests := []struct {
		name       string
		position   string
		wantValue  float64
		wantInjury float64
	}{
		{"Exact Code", "STRIKER", 1.30, 52},
		{"Free Form Label", "centre back", 0.90, 45},
		{"Hyphenated Label", "wing-back", 0.95, 55},
		{"Unknown Position", "SWEEPER KEEPER", DefaultPositionMultiplier, DefaultPositionInjuryRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.PositionMultiplier(tt.position); got != tt.wantValue {
				t.Errorf("PositionMultiplier(%q) = %v, want %v", tt.position, got, tt.wantValue)
			}
			if got := p.PositionInjuryRisk(tt.position); got != tt.wantInjury {
				t.Errorf("PositionInjuryRisk(%q) = %v, want %v", tt.position, got, tt.wantInjury)
			}
		})
	}
}

func TestAgeCurve_Multiplier(t *testing.T) {
	curve := AgeCurve{PeakStart: 24, PeakEnd: 29, DevelopmentMultiplier: 0.04, DeclineRate: 0.08, YouthCeiling: 1.25, Floor: 0.35}

	tests := []struct {
		age  int
		want float64
	}{
		{16, 1.25}, // capped by the youth ceiling
		{22, 1.08},
		{24, 1.0},
		{27, 1.0},
		{29, 1.0},
		{31, 0.84},
		{40, 0.35}, // floor
	}

	for _, tt := range tests {
		got := curve.Multiplier(tt.age)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Multiplier(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestProfile_AccessorsReturnCopies(t *testing.T) {
	p, _ := Get(models.SportRugby)

	positions := p.Positions()
	positions[0] = "MUTATED"
	if p.Positions()[0] == "MUTATED" {
		t.Error("Positions() exposed internal slice")
	}

	cats := p.Categories()
	cats[0].Metrics[0].Key = "mutated"
	if p.Categories()[0].Metrics[0].Key == "mutated" {
		t.Error("Categories() exposed internal metrics")
	}
}

func TestProfile_Summary(t *testing.T) {
	p, _ := Get(models.SportNetball)
	s := p.Summary()

	if len(s.Positions) != len(p.Positions()) {
		t.Fatalf("summary positions = %d, want %d", len(s.Positions), len(p.Positions()))
	}
	if s.BaseValues[models.TierElite] != p.BaseValue(models.TierElite) {
		t.Errorf("summary elite base value mismatch")
	}
	if len(s.Positions[0].InjuryAreas) == 0 {
		t.Errorf("summary position missing injury areas")
	}
}
