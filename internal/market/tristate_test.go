package market

import "testing"

func TestParsePreference(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Preference
	}{
		{"rejection", "nein", PreferenceNotWanted},
		{"rejection mixed case", " NeIn ", PreferenceNotWanted},
		{"indifferent", "egal", PreferenceIndifferent},
		{"indifferent upper", "EGAL", PreferenceIndifferent},
		{"empty still counts as a wish", "", PreferenceWanted},
		{"whitespace still counts as a wish", "   ", PreferenceWanted},
		{"description is a wish", "Balkon mit Südlage", PreferenceWanted},
		{"plain yes", "ja", PreferenceWanted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParsePreference(tc.input); got != tc.want {
				t.Fatalf("ParsePreference(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParsePresence(t *testing.T) {
	if ParsePresence("nein") {
		t.Fatalf("expected 'nein' to mean absent")
	}
	if ParsePresence(" NEIN ") {
		t.Fatalf("expected case-insensitive 'nein' to mean absent")
	}
	if !ParsePresence("kleiner Garten hinterm Haus") {
		t.Fatalf("expected a description to mean present")
	}
	// Only the literal sentinel means absent.
	if !ParsePresence("") {
		t.Fatalf("expected empty answer to mean present")
	}
}

func TestParseAffirmative(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"ja", true},
		{"Ja, Einbauküche vorhanden", true},
		{"nein", false},
		{"", false},
		{"Küche ohne Geräte", false},
	}

	for _, tc := range cases {
		if got := ParseAffirmative(tc.input); got != tc.want {
			t.Fatalf("ParseAffirmative(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
