package market

import (
	"encoding/json"
	"os"
	"time"
)

// Selection is the landlord's confirmed candidate choice for one property,
// handed to the notification backend after the cap check.
type Selection struct {
	PropertyID  string    `json:"propertyId"`
	TenantIDs   []string  `json:"tenantIds"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// NewSelection stamps a confirmed choice with the current time.
func NewSelection(propertyID string, tenantIDs []string) *Selection {
	return &Selection{
		PropertyID:  propertyID,
		TenantIDs:   tenantIDs,
		ConfirmedAt: time.Now().UTC(),
	}
}

// ToFile writes the selection for the downstream notification subsystem.
func (s *Selection) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// DumpToTmpFile writes the selection to a temporary file and returns its name.
func (s *Selection) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "selection_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}
