// Package market holds the listing and seeker profile snapshots handed
// over by the onboarding backend, plus the normalization helpers the
// matching engine relies on. The engine never mutates these records.
package market

import (
	"encoding/json"
	"fmt"
	"os"
)

// Property is a landlord listing snapshot. Field names follow the wire
// format of the onboarding backend.
type Property struct {
	ID              string  `json:"id"`
	PropertyTitle   string  `json:"propertyTitle,omitempty"`
	Address         string  `json:"address"`
	ZipCode         string  `json:"zipCode"`
	Sqm             float64 `json:"sqm"`
	Rooms           float64 `json:"rooms"`
	Floor           string  `json:"floor,omitempty"`
	GardenOrBalcony string  `json:"gardenOrBalcony"`
	ParkingDetails  string  `json:"parkingDetails"`
	KitchenDetails  string  `json:"kitchenDetails"`
	BuildingAge     string  `json:"buildingAge,omitempty"`
	RentCold        float64 `json:"rentCold,omitempty"`
	ServiceCharges  float64 `json:"serviceCharges,omitempty"`
	ParkingRent     float64 `json:"parkingRent,omitempty"`
	OtherCosts      float64 `json:"otherCosts,omitempty"`
	RentWarm        float64 `json:"rentWarm"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

// HasOutdoorSpace reports whether the listing offers a garden or balcony.
func (p *Property) HasOutdoorSpace() bool {
	return ParsePresence(p.GardenOrBalcony)
}

// HasParking reports whether the listing offers a parking space.
func (p *Property) HasParking() bool {
	return ParsePresence(p.ParkingDetails)
}

// HasFittedKitchen reports whether the listing includes a fitted kitchen.
func (p *Property) HasFittedKitchen() bool {
	return ParseAffirmative(p.KitchenDetails)
}

// PropertyFromFile reads a single listing snapshot exported by the
// onboarding backend.
func PropertyFromFile(path string) (*Property, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var property Property
	if err := json.NewDecoder(file).Decode(&property); err != nil {
		return nil, fmt.Errorf("decode property snapshot: %w", err)
	}
	return &property, nil
}
