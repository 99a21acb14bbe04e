// Package program extracts race and betting data from the official race
// program (one race per page): race number from the page header, horse
// count from the saddle-number lines, and the offered bets with their
// minimum stakes from the APUESTAS block.
package program

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ocampos/turfcheck/internal/pkg/betcode"
	"github.com/ocampos/turfcheck/internal/pkg/models"
	"github.com/ocampos/turfcheck/internal/pkg/money"
)

// raceHeaderRe matches "1ª - Premio FLOWING RYE 2013 - 14:05 hs.".
// The ordinal accepts ª, º or a plain "a" because the PDF text layer
// sometimes degrades the glyph.
var raceHeaderRe = regexp.MustCompile(`(?is)(\d+)\s*[ªºa]\s*[-–]\s*(.+?)\s*[-–]\s*\d{1,2}\s*:\s*\d{2}\s*hs\.?`)

// horseNumberRe matches saddle-number lines: "01 NOMBRE", "12 Nombre".
var horseNumberRe = regexp.MustCompile(`(?im)^(\d{2})\s+[A-Z]`)

// betAmountRe matches one "<bet name> $ <amount>" token inside the
// APUESTAS block.
var betAmountRe = regexp.MustCompile(`(?i)(.+?)\s*\$\s*([\d.,]+)`)

var betsMarkerRe = regexp.MustCompile(`(?i)APUESTAS:`)

// Horse numbers outside 1..24 are page noise (years, distances).
const maxHorseNumber = 24

// RaceHeader is one race title located on a program page.
type RaceHeader struct {
	Page   int // 1-based
	Number int
	Name   string
}

// Races returns, for each page that carries a race header, the race number
// and name. Pages without a header are skipped.
func Races(pages []string) []RaceHeader {
	var out []RaceHeader
	for i, text := range pages {
		m := raceHeaderRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		name := strings.Join(strings.Fields(m[2]), " ")
		out = append(out, RaceHeader{Page: i + 1, Number: number, Name: name})
	}
	return out
}

// HorseCounts returns the horse count per race: the highest saddle number
// within 1..24 found on the race's page, 0 when none is found. Unrelated
// two-digit numbers next to a letter can overcount; that is a known limit
// of reading flattened page text.
func HorseCounts(pages []string) map[int]int {
	counts := make(map[int]int)
	for _, text := range pages {
		m := raceHeaderRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		race, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		max := 0
		for _, hm := range horseNumberRe.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(hm[1])
			if err != nil || n < 1 || n > maxHorseNumber {
				continue
			}
			if n > max {
				max = n
			}
		}
		counts[race] = max
	}
	return counts
}

// Observations scans every page and emits the raw bet observations for the
// races found. Horse counts are computed over all pages first so a race
// keeps its count even when its bet line fails to parse.
func Observations(pages []string) []models.BetObservation {
	counts := HorseCounts(pages)

	var out []models.BetObservation
	for i, text := range pages {
		m := raceHeaderRe.FindStringSubmatch(text)
		if m == nil {
			slog.Debug("program: page has no race header, skipping", "page", i+1)
			continue
		}
		race, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		horses := counts[race]

		block := betsBlock(text)
		if block == "" {
			slog.Debug("program: no APUESTAS block on page", "page", i+1, "race", race)
			continue
		}

		for _, bm := range betAmountRe.FindAllStringSubmatch(block, -1) {
			rawName := strings.TrimRight(strings.TrimSpace(bm[1]), ",")
			amount := strings.TrimSpace(bm[2])
			if rawName == "" || amount == "" {
				continue
			}

			// "Ganador, Segundo, Tercero $ 2": the three straight bets
			// share one token; only their existence matters, the amount
			// does not, and the stage filter never applies to them.
			if strings.Contains(rawName, "Ganador") {
				for _, part := range strings.Split(rawName, ",") {
					part = strings.TrimSpace(part)
					if part == "" {
						continue
					}
					code := betcode.Abbreviate(betcode.Normalize(part))
					out = append(out, models.BetObservation{Race: race, HorseCount: horses, Code: code})
				}
				continue
			}

			// Mixed tokens like "Cuaterna 2do.Pase, Cadena 1er.Pase $200":
			// the amount belongs to the last comma segment, so only that
			// segment is classified.
			name := rawName
			if strings.Contains(name, ",") {
				segments := strings.Split(name, ",")
				name = strings.TrimSpace(segments[len(segments)-1])
			}

			if betcode.IsExcluded(name) {
				continue
			}
			code := betcode.Abbreviate(betcode.Normalize(name))
			out = append(out, models.BetObservation{Race: race, HorseCount: horses, Code: code, AmountText: amount})
		}
	}
	return out
}

// betsBlock returns the text after "APUESTAS:" on its line plus the
// following raw line, joined with a space. Empty when the marker is
// missing.
func betsBlock(pageText string) string {
	lines := strings.Split(pageText, "\n")
	for i, line := range lines {
		loc := betsMarkerRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		parts := []string{strings.TrimSpace(line[loc[1]:])}
		if i+1 < len(lines) {
			parts = append(parts, strings.TrimSpace(lines[i+1]))
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	}
	return ""
}

// Normalize folds raw observations into the canonical per-race card.
// Later observations for the same race and code overwrite earlier ones.
func Normalize(observations []models.BetObservation) models.Card {
	card := make(models.Card)
	for _, obs := range observations {
		race, ok := card[obs.Race]
		if !ok {
			race = &models.Race{Number: obs.Race, HorseCount: obs.HorseCount, Bets: make(map[string]*float64)}
			card[obs.Race] = race
		}
		if v, ok := money.Parse(obs.AmountText); ok {
			race.Bets[obs.Code] = &v
		} else {
			race.Bets[obs.Code] = nil
		}
	}
	return card
}

// Extract is the one-call convenience: observations plus their canonical
// card for a program's pages.
func Extract(pages []string) ([]models.BetObservation, models.Card) {
	obs := Observations(pages)
	return obs, Normalize(obs)
}
