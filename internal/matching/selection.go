package matching

import (
	"errors"
	"fmt"
)

// ErrSelectionCapExceeded is returned when the landlord picks more distinct
// candidates than the cap allows. It is the only condition surfaced to the
// user; everything else in a round degrades silently.
var ErrSelectionCapExceeded = errors.New("selection cap exceeded")

// Select validates the landlord's choice against the current shortlist.
// Duplicates are collapsed (first occurrence wins). A deduplicated choice
// larger than the cap is rejected outright with no partial set. IDs no
// longer on the shortlist are dropped silently: the shortlist may have
// changed between display and submission, and a reduced valid subset must
// still go through.
func (e *Engine) Select(ranked []RankedCandidate, chosenIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(chosenIDs))
	deduped := make([]string, 0, len(chosenIDs))
	for _, id := range chosenIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	if len(deduped) > e.config.SelectionCap {
		return nil, fmt.Errorf("%w: %d chosen, at most %d allowed", ErrSelectionCapExceeded, len(deduped), e.config.SelectionCap)
	}

	shortlisted := make(map[string]struct{}, len(ranked))
	for _, candidate := range ranked {
		shortlisted[candidate.Tenant.ID] = struct{}{}
	}

	accepted := make([]string, 0, len(deduped))
	for _, id := range deduped {
		if _, ok := shortlisted[id]; ok {
			accepted = append(accepted, id)
		}
	}
	return accepted, nil
}
