package matching

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/propertymind/mietermatch/internal/market"
)

func testEngine() *Engine {
	return NewEngine(Config{}, zap.NewNop())
}

func testProperty() *market.Property {
	return &market.Property{
		ID:              "p1",
		Address:         "Musterstraße 1, 10115 Berlin",
		ZipCode:         "10115",
		Sqm:             70,
		Rooms:           3,
		RentWarm:        1000,
		GardenOrBalcony: "nein",
		ParkingDetails:  "nein",
		KitchenDetails:  "nein",
	}
}

func testTenant() *market.TenantProfile {
	return &market.TenantProfile{
		ID:              "t1",
		DesiredLocation: "10115 Berlin",
		MinSqm:          65,
		MinRooms:        3,
		MaxRent:         1000,
		GardenOrBalcony: "nein",
		ParkingNeeded:   "nein",
		KitchenIncluded: "nein",
		Status:          market.StatusActive,
	}
}

func TestEligibleRules(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		name       string
		mutate     func(p *market.Property, tn *market.TenantProfile)
		want       bool
		failedRule string
	}{
		{
			name:   "perfect match",
			mutate: func(*market.Property, *market.TenantProfile) {},
			want:   true,
		},
		{
			name: "zip code in desired location",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				p.Address = "Andere Straße 5, München"
				tn.DesiredLocation = "irgendwo im Bereich 10115"
			},
			want: true,
		},
		{
			name: "comma separated segment in address",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.DesiredLocation = "München, Berlin"
			},
			want: true,
		},
		{
			name: "location match is case-insensitive",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.DesiredLocation = "10115 BERLIN"
			},
			want: true,
		},
		{
			name: "unrelated location",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.DesiredLocation = "80331 München"
			},
			want:       false,
			failedRule: "location",
		},
		{
			name: "rent above tolerance",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.MaxRent = 800 // 1000 > 800 * 1.10
			},
			want:       false,
			failedRule: "rent",
		},
		{
			name: "rent within tolerance",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.MaxRent = 950 // 1000 <= 950 * 1.10
			},
			want: true,
		},
		{
			name: "area below tolerance",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.MinSqm = 80 // 70 < 80 * 0.90
			},
			want:       false,
			failedRule: "area",
		},
		{
			name: "area within tolerance",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.MinSqm = 77 // 70 >= 77 * 0.90
			},
			want: true,
		},
		{
			name: "too few rooms, no tolerance",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.MinRooms = 3.5
			},
			want:       false,
			failedRule: "rooms",
		},
		{
			name: "location checked before rent",
			mutate: func(p *market.Property, tn *market.TenantProfile) {
				tn.DesiredLocation = "80331 München"
				tn.MaxRent = 100
			},
			want:       false,
			failedRule: "location",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			property := testProperty()
			tenant := testTenant()
			tc.mutate(property, tenant)

			ok, reason, err := engine.eligible(property, tenant)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("eligible = %v, want %v", ok, tc.want)
			}
			if reason != tc.failedRule {
				t.Fatalf("failed rule = %q, want %q", reason, tc.failedRule)
			}
		})
	}
}

func TestEligibleMalformedInput(t *testing.T) {
	engine := testEngine()

	property := testProperty()
	property.RentWarm = 0

	ok, _, err := engine.eligible(property, testTenant())
	if ok {
		t.Fatalf("expected malformed pair to be ineligible")
	}
	if !errors.Is(err, errMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}

	tenant := testTenant()
	tenant.MinRooms = -1

	ok, _, err = engine.eligible(testProperty(), tenant)
	if ok || !errors.Is(err, errMalformedInput) {
		t.Fatalf("expected malformed input error, got ok=%v err=%v", ok, err)
	}
}

func TestEligibleNilRecords(t *testing.T) {
	engine := testEngine()

	if ok, _, err := engine.eligible(nil, testTenant()); ok || err == nil {
		t.Fatalf("expected error for nil property")
	}
	if ok, _, err := engine.eligible(testProperty(), nil); ok || err == nil {
		t.Fatalf("expected error for nil tenant")
	}
}
