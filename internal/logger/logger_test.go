package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"trims whitespace", "  hello  ", 10, "hello"},
		{"truncates with ellipsis", "hello world", 5, "hello..."},
		{"zero limit", "hello", 0, ""},
		{"multibyte runes", "grüße aus münchen", 5, "grüße..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.input, tc.limit); got != tc.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.input, tc.limit, got, tc.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, json := range []bool{true, false} {
		log, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if log == nil {
			t.Fatalf("expected a logger")
		}
	}
}
