package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dutch mobile national", "06 12345678", "+31612345678"},
		{"dutch landline national", "020 123 4567", "+31201234567"},
		{"already e164", "+31612345678", "+31612345678"},
		{"international dialing prefix", "0031 6 12345678", "+31612345678"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
		{"not a number", "bellen na 18:00", "bellen na 18:00"},
		{"too short", "06123", "06123"},
		{"untrimmed invalid", "  06123  ", "06123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeE164(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
