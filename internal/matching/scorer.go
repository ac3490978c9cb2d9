package matching

import (
	"context"

	"github.com/propertymind/mietermatch/internal/market"
)

// Assessment is the outcome of scoring one eligible pair. Reasoning and
// IncomeSuitability are only populated by the AI-assisted scorer.
type Assessment struct {
	Score             int
	Reasoning         string
	IncomeSuitability string
}

// Scorer rates an eligible (property, tenant) pair with a score in [0,100].
// A returned error marks the pair as ineligible; it never aborts the round.
type Scorer interface {
	Score(ctx context.Context, property *market.Property, tenant *market.TenantProfile) (Assessment, error)
}

// BaseScorer is the deterministic scorer: a base score for passing all hard
// rules plus additive bonuses for fully met soft preferences, clamped at 100.
// It is pure and stateless.
type BaseScorer struct {
	base int
}

// NewBaseScorer returns the deterministic scorer. A non-positive base falls
// back to the default.
func NewBaseScorer(base int) *BaseScorer {
	if base <= 0 {
		base = DefaultBaseScore
	}
	return &BaseScorer{base: base}
}

func (s *BaseScorer) Score(_ context.Context, property *market.Property, tenant *market.TenantProfile) (Assessment, error) {
	if err := validatePair(property, tenant); err != nil {
		return Assessment{}, err
	}

	score := s.base

	// Within the stated budget outright, not just within tolerance.
	if property.RentWarm <= tenant.MaxRent {
		score += 10
	}
	if property.Sqm >= tenant.MinSqm {
		score += 5
	}
	if property.Rooms > tenant.MinRooms {
		score += 5
	}
	if property.HasFittedKitchen() == tenant.WantsFittedKitchen() {
		score += 5
	}
	if property.HasOutdoorSpace() && tenant.OutdoorPreference() == market.PreferenceWanted {
		score += 10
	}
	if property.HasParking() && tenant.ParkingPreference() == market.PreferenceWanted {
		score += 5
	}

	if score > 100 {
		score = 100
	}

	return Assessment{Score: score}, nil
}
