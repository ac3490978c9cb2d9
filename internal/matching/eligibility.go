package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/propertymind/mietermatch/internal/market"
)

// errMalformedInput marks a record with unusable numeric fields. Pairs
// carrying it are dropped from the round instead of failing it.
var errMalformedInput = errors.New("malformed input")

// validatePair rejects records whose required numeric fields are missing,
// negative or NaN. The onboarding backend should never produce these, but a
// broken export must not take the whole round down.
func validatePair(property *market.Property, tenant *market.TenantProfile) error {
	if property == nil || tenant == nil {
		return fmt.Errorf("%w: nil record", errMalformedInput)
	}
	for name, v := range map[string]float64{
		"property rentWarm": property.RentWarm,
		"property sqm":      property.Sqm,
		"property rooms":    property.Rooms,
		"tenant maxRent":    tenant.MaxRent,
		"tenant minSqm":     tenant.MinSqm,
		"tenant minRooms":   tenant.MinRooms,
	} {
		if math.IsNaN(v) || v <= 0 {
			return fmt.Errorf("%w: %s = %v", errMalformedInput, name, v)
		}
	}
	return nil
}

// eligible applies the four hard rules in strict priority order, stopping at
// the first failing one. The returned reason names the failed rule.
func (e *Engine) eligible(property *market.Property, tenant *market.TenantProfile) (bool, string, error) {
	if err := validatePair(property, tenant); err != nil {
		return false, "", err
	}

	if !locationMatches(property, tenant) {
		return false, "location", nil
	}
	if property.RentWarm > tenant.MaxRent*(1+e.config.RentTolerance) {
		return false, "rent", nil
	}
	if property.Sqm < tenant.MinSqm*(1-e.config.AreaTolerance) {
		return false, "area", nil
	}
	if property.Rooms < tenant.MinRooms {
		return false, "rooms", nil
	}

	return true, "", nil
}

// locationMatches relates the seeker's desired-location text to the listing.
// It succeeds when the zip code appears in the desired location, the address
// contains the whole desired location, or any comma-separated segment of the
// desired location appears in the address. The substring checks are known to
// be loose for very short segments; this mirrors the product rule.
func locationMatches(property *market.Property, tenant *market.TenantProfile) bool {
	zip := strings.ToLower(strings.TrimSpace(property.ZipCode))
	address := strings.ToLower(property.Address)
	desired := strings.ToLower(tenant.DesiredLocation)

	if zip != "" && strings.Contains(desired, zip) {
		return true
	}
	if strings.Contains(address, desired) {
		return true
	}
	for _, segment := range strings.Split(desired, ",") {
		segment = strings.TrimSpace(segment)
		if segment != "" && strings.Contains(address, segment) {
			return true
		}
	}
	return false
}
