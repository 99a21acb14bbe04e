package palermo

import (
	"reflect"
	"testing"
)

const samplePage = `PROGRAMA OFICIAL - HIPODROMO ARGENTINO DE PALERMO
REUNION DEL 10/08/2026
DOBLE: ($ 1.000.-) DESDE LA 1ª HASTA LA 11ª
CUATRIFECTA: ($ 500.-) 2ª4ª6ª9ª; 12ª
TRIFECTA: ($ 1.000,00) 1ª, 10ª
EXACTA: ($ 1000,00) 3ª
CARRERA CONDICIONAL (sin monto en esta fila)
`

func TestParsePages(t *testing.T) {
	p := ParsePages([]string{samplePage})

	if !reflect.DeepEqual(p.Dates, []string{"10/08/2026"}) {
		t.Fatalf("Dates = %v, want [10/08/2026]", p.Dates)
	}

	bets := p.ByDate["10/08/2026"]
	for race := 1; race <= 11; race++ {
		if bets[race]["DOB"] != 1000 {
			t.Errorf("race %d DOB = %v, want 1000 (DESDE..HASTA span)", race, bets[race]["DOB"])
		}
	}
	if _, ok := bets[12]["DOB"]; ok {
		t.Error("race 12 has DOB, span ends at 11")
	}
	for _, race := range []int{2, 4, 6, 9, 12} {
		if bets[race]["CUA"] != 500 {
			t.Errorf("race %d CUA = %v, want 500", race, bets[race]["CUA"])
		}
	}
	if bets[1]["TRI"] != 1000 || bets[10]["TRI"] != 1000 {
		t.Errorf("TRI = %v/%v on races 1/10, want 1000", bets[1]["TRI"], bets[10]["TRI"])
	}
	if bets[3]["EXA"] != 1000 {
		t.Errorf("race 3 EXA = %v, want 1000", bets[3]["EXA"])
	}

	sum := p.Summary["10/08/2026"]
	if sum["EXA"].Lines != 1 || sum["EXA"].Amount != 1000 {
		t.Errorf("EXA summary = %+v, want 1 line at 1000", sum["EXA"])
	}
	if sum["DOB"].Lines != 1 || len(sum["DOB"].Races) != 11 {
		t.Errorf("DOB summary = %+v, want 1 line over 11 races", sum["DOB"])
	}
}

func TestParsePagesRowBeforeDateSkipped(t *testing.T) {
	page := "EXACTA: ($ 1000,00) 3ª\nREUNION DEL 10/08/2026\nTRIFECTA: ($ 500,00) 1ª\n"
	p := ParsePages([]string{page})
	bets := p.ByDate["10/08/2026"]
	if _, ok := bets[3]; ok {
		t.Error("row before the first date was recorded")
	}
	if bets[1]["TRI"] != 500 {
		t.Errorf("race 1 TRI = %v, want 500", bets[1]["TRI"])
	}
}

func TestParsePagesDateResetsPerPage(t *testing.T) {
	page2 := "REUNION DEL 17/08/2026\nEXACTA: ($ 2000,00) 5ª\n"
	p := ParsePages([]string{samplePage, page2})
	if !reflect.DeepEqual(p.Dates, []string{"10/08/2026", "17/08/2026"}) {
		t.Fatalf("Dates = %v", p.Dates)
	}
	if p.ByDate["17/08/2026"][5]["EXA"] != 2000 {
		t.Errorf("second date EXA = %v, want 2000", p.ByDate["17/08/2026"][5]["EXA"])
	}
	if _, ok := p.ByDate["17/08/2026"][3]; ok {
		t.Error("first date's rows leaked into the second date")
	}
}

func TestMapDescriptionOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CUATRIFECTA:", "CUA"}, // contains "trifecta"; CUA must win
		{"TRIFECTA:", "TRI"},
		{"Doble extra", "DOB"},
		{"Doble", "DOB"},
		{"5 Y 6", "CAD"},
		{"5y6 especial", "CAD"},
		{"PICK CUATRO", "QTN"},
		{"pick 5", "QTP"},
		{"Exacta", "EXA"},
		{"Triplo", "TPL"},
		{"Imperfecta", "IMP"},
		{"Premio Clausura", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapDescription(tt.in); got != tt.want {
			t.Errorf("MapDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFillBlanketRates(t *testing.T) {
	p := ParsePages([]string{samplePage})
	reportRaces := []int{1, 2, 3, 4, 5}

	bets := p.BetsForDate("10/08/2026")
	bets = p.FillBlanketRates(bets, "10/08/2026", reportRaces)

	// EXA appeared once (race 3): blanket 1000 everywhere else.
	for _, race := range reportRaces {
		if bets[race]["EXA"] != 1000 {
			t.Errorf("race %d EXA = %v, want blanket 1000", race, bets[race]["EXA"])
		}
	}
	// TRI appeared once too: races 2,3,4,5 get it, 1 keeps its explicit value.
	if bets[1]["TRI"] != 1000 {
		t.Errorf("race 1 TRI = %v, want explicit 1000", bets[1]["TRI"])
	}
	if bets[5]["TRI"] != 1000 {
		t.Errorf("race 5 TRI = %v, want blanket 1000", bets[5]["TRI"])
	}
	// DOB is not a blanket code: only its explicit races carry it.
	if _, ok := bets[12]["DOB"]; ok {
		t.Error("DOB expanded as blanket, only EXA/TRI qualify")
	}
}

func TestBetsForDateCopies(t *testing.T) {
	p := ParsePages([]string{samplePage})
	bets := p.BetsForDate("10/08/2026")
	bets[3]["EXA"] = 9999
	if p.ByDate["10/08/2026"][3]["EXA"] != 1000 {
		t.Error("BetsForDate returned the stored map instead of a copy")
	}
}
