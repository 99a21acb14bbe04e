package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		// Thousands-grouped integers
		{"5.000", 5000, true},
		{"1.234.567", 1234567, true},
		{"1.234", 1234, true}, // ambiguous token: grouping wins
		// Comma decimals, optionally with period grouping
		{"1000,50", 1000.5, true},
		{"1.000,50", 1000.5, true},
		{"500,00", 500, true},
		// Plain decimals
		{"5.5", 5.5, true},
		{"10.25", 10.25, true},
		{"0.5", 0.5, true},
		// Plain integers
		{"2000", 2000, true},
		{" 200 ", 200, true},
		// Unparseable
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1.2a", 0, false},
		{"1,2,3", 0, false},
		{"1..000", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
