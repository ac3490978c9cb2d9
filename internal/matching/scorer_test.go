package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/propertymind/mietermatch/internal/market"
)

func TestBaseScorerBaseOnly(t *testing.T) {
	property := testProperty()
	tenant := testTenant()

	// Eligible only through the tolerances, with no soft preference met.
	tenant.MaxRent = 950          // rent above stated budget, within tolerance
	tenant.MinSqm = 75            // area below minimum, within tolerance
	tenant.MinRooms = 3           // rooms exactly met, no bonus
	tenant.KitchenIncluded = "ja" // mismatch with listing without kitchen

	assessment, err := NewBaseScorer(0).Score(context.Background(), property, tenant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.Score != DefaultBaseScore {
		t.Fatalf("expected base score %d, got %d", DefaultBaseScore, assessment.Score)
	}
	if assessment.Reasoning != "" {
		t.Fatalf("deterministic scorer must not produce a rationale")
	}
}

func TestBaseScorerBonuses(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *market.Property, tn *market.TenantProfile)
		want   int
	}{
		{
			name:   "rent and area fully met plus kitchen agreement",
			mutate: func(*market.Property, *market.TenantProfile) {},
			// base 60 + rent 10 + area 5 + kitchen both absent 5
			want: 80,
		},
		{
			name: "extra rooms",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.Rooms = 4
			},
			want: 85,
		},
		{
			name: "outdoor space wanted and present",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.GardenOrBalcony = "Balkon"
				tn.GardenOrBalcony = "Balkon bitte"
			},
			want: 90,
		},
		{
			name: "unanswered outdoor question still earns the bonus",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.GardenOrBalcony = "Garten mit Terrasse"
				tn.GardenOrBalcony = ""
			},
			want: 90,
		},
		{
			name: "unanswered parking question still earns the bonus",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.ParkingDetails = "Tiefgarage"
				tn.ParkingNeeded = "  "
			},
			want: 85,
		},
		{
			name: "outdoor indifference earns nothing",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.GardenOrBalcony = "Balkon"
				tn.GardenOrBalcony = "egal"
			},
			want: 80,
		},
		{
			name: "parking needed and present",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.ParkingDetails = "Tiefgarage"
				tn.ParkingNeeded = "ja"
			},
			want: 85,
		},
		{
			name: "kitchen wanted and present",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.KitchenDetails = "ja, Einbauküche"
				tn.KitchenIncluded = "ja"
			},
			want: 80,
		},
		{
			name: "kitchen mismatch loses the agreement bonus",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.KitchenIncluded = "ja"
			},
			want: 75,
		},
		{
			name: "everything met clamps at 100",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.Rooms = 4
				p.GardenOrBalcony = "Garten"
				p.ParkingDetails = "Stellplatz"
				p.KitchenDetails = "ja"
				tn.GardenOrBalcony = "Garten gewünscht"
				tn.ParkingNeeded = "ja"
				tn.KitchenIncluded = "ja"
			},
			want: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			property := testProperty()
			tenant := testTenant()
			tc.mutate(property, tenant)

			assessment, err := NewBaseScorer(0).Score(context.Background(), property, tenant)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if assessment.Score != tc.want {
				t.Fatalf("score = %d, want %d", assessment.Score, tc.want)
			}
			if assessment.Score < DefaultBaseScore || assessment.Score > 100 {
				t.Fatalf("score %d outside [%d,100]", assessment.Score, DefaultBaseScore)
			}
		})
	}
}

func TestBaseScorerClampsElevatedBase(t *testing.T) {
	property := testProperty()
	property.Rooms = 4
	property.GardenOrBalcony = "Garten"
	property.ParkingDetails = "Stellplatz"
	property.KitchenDetails = "ja"

	tenant := testTenant()
	tenant.GardenOrBalcony = "ja"
	tenant.ParkingNeeded = "ja"
	tenant.KitchenIncluded = "ja"

	assessment, err := NewBaseScorer(80).Score(context.Background(), property, tenant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.Score != 100 {
		t.Fatalf("expected clamp at 100, got %d", assessment.Score)
	}
}

func TestBaseScorerMalformedInput(t *testing.T) {
	tenant := testTenant()
	tenant.MaxRent = 0

	_, err := NewBaseScorer(0).Score(context.Background(), testProperty(), tenant)
	if !errors.Is(err, errMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}
}
