package market

import "strings"

// Preference is the normalized form of the free-text amenity answers
// collected by the onboarding flow. The raw answers use the German
// sentinels "nein" (not wanted) and "egal" (indifferent); any other
// answer, an empty one included, counts as wanted.
type Preference int

const (
	PreferenceIndifferent Preference = iota
	PreferenceNotWanted
	PreferenceWanted
)

const (
	sentinelNo          = "nein"
	sentinelIndifferent = "egal"
	affirmativeToken    = "ja"
)

func (p Preference) String() string {
	switch p {
	case PreferenceWanted:
		return "wanted"
	case PreferenceNotWanted:
		return "not wanted"
	default:
		return "indifferent"
	}
}

// ParsePreference normalizes a seeker-side free-text answer. Matching is
// case-insensitive and ignores surrounding whitespace. Only the two
// sentinels opt out; an unanswered question still counts as wanted.
func ParsePreference(text string) Preference {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case sentinelIndifferent:
		return PreferenceIndifferent
	case sentinelNo:
		return PreferenceNotWanted
	default:
		return PreferenceWanted
	}
}

// ParsePresence reports whether a listing-side free-text answer describes
// the amenity as present. Only the literal "nein" means absent; any other
// text (a description, "ja", even an empty answer) means present.
func ParsePresence(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) != sentinelNo
}

// ParseAffirmative reports whether the text contains the affirmative token
// "ja". Used for the fitted kitchen fields on both sides.
func ParseAffirmative(text string) bool {
	return strings.Contains(strings.ToLower(text), affirmativeToken)
}
