package market

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Profile lifecycle states. Only active profiles take part in matching.
const (
	StatusActive      = "active"
	StatusUnconfirmed = "unconfirmed"
)

// TenantProfile is a seeker profile snapshot from the onboarding backend.
type TenantProfile struct {
	ID                string  `json:"id"`
	DesiredLocation   string  `json:"desiredLocation"`
	MinSqm            float64 `json:"minSqm"`
	MinRooms          float64 `json:"minRooms"`
	PreferredFloor    string  `json:"preferredFloor,omitempty"`
	GardenOrBalcony   string  `json:"gardenOrBalcony"`
	ParkingNeeded     string  `json:"parkingNeeded"`
	KitchenIncluded   string  `json:"kitchenIncluded"`
	BuildingCondition string  `json:"buildingCondition,omitempty"`
	MaxRent           float64 `json:"maxRent"`
	HouseholdIncome   float64 `json:"householdIncome"`
	IncomeType        string  `json:"incomeType,omitempty"`
	IncomeDetails     string  `json:"incomeDetails,omitempty"`
	PersonalIntro     string  `json:"personalIntro,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt,omitempty"`
}

// IsActive reports whether the profile may take part in matching.
func (t *TenantProfile) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), StatusActive)
}

// OutdoorPreference returns the normalized garden/balcony wish.
func (t *TenantProfile) OutdoorPreference() Preference {
	return ParsePreference(t.GardenOrBalcony)
}

// ParkingPreference returns the normalized parking wish.
func (t *TenantProfile) ParkingPreference() Preference {
	return ParsePreference(t.ParkingNeeded)
}

// WantsFittedKitchen reports whether the profile asks for a fitted kitchen.
func (t *TenantProfile) WantsFittedKitchen() bool {
	return ParseAffirmative(t.KitchenIncluded)
}

// Tenants is the seeker profile pool for one matching round.
type Tenants struct {
	Items []*TenantProfile
}

func (t *Tenants) Len() int {
	return len(t.Items)
}

func (t *Tenants) FindByID(id string) *TenantProfile {
	for _, tenant := range t.Items {
		if tenant.ID == id {
			return tenant
		}
	}
	return nil
}

// Active returns the active profiles, preserving order.
func (t *Tenants) Active() *Tenants {
	active := &Tenants{}
	for _, tenant := range t.Items {
		if tenant.IsActive() {
			active.Items = append(active.Items, tenant)
		}
	}
	return active
}

// TenantsFromFile reads a seeker pool snapshot. The backend stores numeric
// columns as REAL but older exports carry them as strings, so the records
// are decoded weakly typed.
func TenantsFromFile(path string) (*Tenants, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []map[string]any
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode tenants snapshot: %w", err)
	}

	var items []*TenantProfile
	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(records); err != nil {
		return nil, fmt.Errorf("decode tenant records: %w", err)
	}

	return &Tenants{Items: items}, nil
}

// DumpToTmpFile writes the pool to a temporary JSON file for inspection.
func (t *Tenants) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "tenants_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", err
	}
	return file.Name(), nil
}
