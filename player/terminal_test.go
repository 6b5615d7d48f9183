package player

import "testing"

func TestSupportsTrueColor(t *testing.T) {
	tests := []struct {
		colorterm, term string
		want            bool
	}{
		{"truecolor", "xterm", true},
		{"24bit", "", true},
		{"", "xterm-256color", true},
		{"", "xterm-truecolor", true},
		{"", "xterm", false},
		{"", "", false},
	}

	for _, tt := range tests {
		env := map[string]string{"COLORTERM": tt.colorterm, "TERM": tt.term}
		got := SupportsTrueColor(func(k string) string { return env[k] })
		if got != tt.want {
			t.Errorf("COLORTERM=%q TERM=%q: got %v, want %v", tt.colorterm, tt.term, got, tt.want)
		}
	}
}

func TestParseQuality(t *testing.T) {
	for _, s := range []string{"high", "HIGH", " medium ", "low"} {
		if _, err := ParseQuality(s); err != nil {
			t.Errorf("ParseQuality(%q): %v", s, err)
		}
	}
	if _, err := ParseQuality("ultra"); err == nil {
		t.Error("expected error for unknown quality")
	}
}
