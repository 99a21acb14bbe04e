package models

import (
	"reflect"
	"testing"
)

func TestCardRaces(t *testing.T) {
	card := Card{
		7: &Race{Number: 7},
		1: &Race{Number: 1},
		3: &Race{Number: 3},
	}
	if got := card.Races(); !reflect.DeepEqual(got, []int{1, 3, 7}) {
		t.Errorf("Races() = %v, want [1 3 7]", got)
	}
}

func TestFormatBets(t *testing.T) {
	tests := []struct {
		bets map[string]*float64
		want string
	}{
		{nil, "-"},
		{map[string]*float64{}, "-"},
		{map[string]*float64{"GAN": nil}, "GAN"},
		{map[string]*float64{"IMP": Amount(1000), "GAN": nil}, "GAN, IMP=1000"},
		{map[string]*float64{"TRI": Amount(1000.5), "EXA": Amount(500)}, "EXA=500, TRI=1000.50"},
		// Unknown codes go after the known display order, alphabetically.
		{map[string]*float64{"ZZZ": nil, "AAA": nil, "CUA": Amount(500)}, "CUA=500, AAA, ZZZ"},
	}
	for _, tt := range tests {
		if got := FormatBets(tt.bets); got != tt.want {
			t.Errorf("FormatBets(%v) = %q, want %q", tt.bets, got, tt.want)
		}
	}
}
