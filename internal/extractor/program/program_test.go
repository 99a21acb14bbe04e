package program

import (
	"fmt"
	"strings"
	"testing"
)

func testPage() string {
	var b strings.Builder
	b.WriteString("1ª - Premio FLOWING RYE 2013 - 14:05 hs.\n")
	b.WriteString("Distancia 1600 metros\n")
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "%02d CABALLO %c\n", i, 'A'+(i-1)%26)
	}
	b.WriteString("APUESTAS: Ganador, Segundo, Tercero $ 2 Imperfecta $ 1.000 Trifecta $ 1.000\n")
	b.WriteString("Cuaterna 1er.Pase $ 2.000 Triplo 2do.Pase $ 500 Cuaterna 2do.Pase, Cadena 1er.Pase $ 200 Doble Plus $ 1.000\n")
	b.WriteString("Condiciones generales del premio\n")
	return b.String()
}

func TestRaces(t *testing.T) {
	pages := []string{"indice general, sin encabezado", testPage()}
	races := Races(pages)
	if len(races) != 1 {
		t.Fatalf("Races returned %d headers, want 1", len(races))
	}
	r := races[0]
	if r.Page != 2 || r.Number != 1 || r.Name != "Premio FLOWING RYE 2013" {
		t.Errorf("Races[0] = %+v, want page 2, race 1, name %q", r, "Premio FLOWING RYE 2013")
	}
}

func TestRacesDegradedOrdinal(t *testing.T) {
	// Text layer sometimes renders "3ª" as "3a".
	page := "3a - Premio CRIADORES - 16:30 hs.\n01 ALGO\n"
	races := Races([]string{page})
	if len(races) != 1 || races[0].Number != 3 {
		t.Fatalf("Races = %+v, want single race 3", races)
	}
}

func TestHorseCounts(t *testing.T) {
	counts := HorseCounts([]string{testPage()})
	if counts[1] != 15 {
		t.Errorf("HorseCounts[1] = %d, want 15", counts[1])
	}
}

func TestHorseCountsNoHorses(t *testing.T) {
	page := "2ª - Premio VACIO - 15:00 hs.\nAPUESTAS: Exacta $ 1.000\n"
	counts := HorseCounts([]string{page})
	if got, ok := counts[2]; !ok || got != 0 {
		t.Errorf("HorseCounts[2] = %d (present=%v), want 0 with entry present", got, ok)
	}
}

func TestObservationsAndNormalize(t *testing.T) {
	obs, card := Extract([]string{testPage()})

	for _, o := range obs {
		if o.Race != 1 || o.HorseCount != 15 {
			t.Errorf("observation %+v: want race 1 with 15 horses", o)
		}
		if o.Code == "TPL" {
			t.Errorf("second-stage Triplo leaked into observations: %+v", o)
		}
	}

	race := card[1]
	if race == nil {
		t.Fatal("card has no race 1")
	}
	wantAmounts := map[string]float64{"IMP": 1000, "TRI": 1000, "QTN": 2000, "CAD": 200, "DOB": 1000}
	for code, want := range wantAmounts {
		got := race.Bets[code]
		if got == nil || *got != want {
			t.Errorf("race 1 %s = %v, want %v", code, got, want)
		}
	}
	for _, code := range []string{"GAN", "SEG", "TER"} {
		got, ok := race.Bets[code]
		if !ok {
			t.Errorf("race 1 missing %s", code)
			continue
		}
		if got != nil {
			t.Errorf("race 1 %s = %v, want unknown amount", code, *got)
		}
	}
	if len(race.Bets) != 8 {
		t.Errorf("race 1 has %d bets (%v), want 8", len(race.Bets), race.Bets)
	}
}

func TestObservationsSkipsHeaderlessPages(t *testing.T) {
	if obs := Observations([]string{"pagina institucional\nAPUESTAS: Exacta $ 500\n"}); len(obs) != 0 {
		t.Errorf("Observations on headerless page = %v, want none", obs)
	}
}

func TestNormalizeLastWriteWins(t *testing.T) {
	page := "4ª - Premio DOBLE LINEA - 17:00 hs.\n" +
		"01 UNO\n02 DOS\n" +
		"APUESTAS: Exacta $ 500\nExacta $ 800\n"
	_, card := Extract([]string{page})
	got := card[4].Bets["EXA"]
	if got == nil || *got != 800 {
		t.Errorf("EXA = %v, want 800 (last observation wins)", got)
	}
}
