// Package report extracts race data from the betting-configuration report,
// a line-oriented text dump: a per-race availability table (which bets are
// open and how many starting slots the race has) and an RSM TABLE section
// with per-range minimum stakes.
package report

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/ocampos/turfcheck/internal/pkg/models"
	"github.com/ocampos/turfcheck/internal/pkg/money"
	"github.com/ocampos/turfcheck/internal/pkg/racerange"
)

// raceRowRe matches an availability row: "1  GAN SEG TER 1/9 1/9 ...".
var raceRowRe = regexp.MustCompile(`^\s*(\d+)\s+([A-Z\s]+?)(?:\s+1/9)+`)

// newRaceRe detects the start of another race row while scanning
// continuation lines.
var newRaceRe = regexp.MustCompile(`^\s*\d+\s+`)

var (
	slotRe = regexp.MustCompile(`1/9`)
	scrRe  = regexp.MustCompile(`(?i)\bSCR\b`)
)

// codeRe picks canonical bet codes out of an availability line.
var codeRe = regexp.MustCompile(`\b(GAN|SEG|TER|EXA|TRI|IMP|DOB|TPL|QTN|QTP|CAD|CUA)\b`)

// rsmRowRe matches a stakes row: "  2  ALL  ---  EXA  TS  1000,00 ...".
var rsmRowRe = regexp.MustCompile(`(?m)^\s*\d+\s+(\S+(?:[-\s,]\S+)*)\s+---\s+([A-Z]+)\s+TS\s+([\d.,]+)`)

// defaultMinimumRe matches "EXA  1000,00" pairs in the defaults section.
var defaultMinimumRe = regexp.MustCompile(`(GAN|SEG|TER|EXA|IMP|TRI|DOB|TPL|QTN|QTP|CAD|CUA)\s+([\d.,]+)`)

const (
	rsmMarker      = "RSM TABLE"
	rsmEndMarker   = "TIM BETTING"
	defaultsMarker = "CARD DEFAULT MINIMUMS - ARS"
)

// Continuation lines per race row; bounds the lookahead on malformed input.
const maxContinuationLines = 15

// rsmCodes maps RSM TABLE bet types to canonical codes. WPS covers
// GAN/SEG/TER but is deliberately unmapped: the straight bets are compared
// for presence only, never for stakes.
var rsmCodes = map[string]string{
	"EXA": "EXA",
	"TRI": "TRI",
	"IMP": "IMP",
	"DOB": "DOB",
	"TPL": "TPL",
	"QTN": "QTN",
	"QTP": "QTP",
	"CAD": "CAD",
	"CUA": "CUA",
}

// Parse builds the report's canonical card: bet availability and horse
// counts from the race rows, stakes from the RSM TABLE. A bet listed as
// available but absent from the RSM TABLE keeps an unknown amount — the
// CARD DEFAULT MINIMUMS section is not a fallback.
func Parse(content string) models.Card {
	horses, codesByRace := availability(content)
	stakes := rsmStakes(content, sortedKeys(horses))

	card := make(models.Card)
	for race := range codesByRace {
		card[race] = &models.Race{Number: race, HorseCount: horses[race], Bets: make(map[string]*float64)}
	}
	for race := range horses {
		if _, ok := card[race]; !ok {
			card[race] = &models.Race{Number: race, HorseCount: horses[race], Bets: make(map[string]*float64)}
		}
	}

	for race, entry := range card {
		for code := range codesByRace[race] {
			if v, ok := stakes[race][code]; ok {
				amount := v
				entry.Bets[code] = &amount
			} else {
				entry.Bets[code] = nil
			}
		}
	}
	return card
}

// availability runs the first pass: per-race horse counts (slot markers
// plus SCR markers) and the union of bet codes on the race row and its
// indented continuation lines.
func availability(content string) (map[int]int, map[int]map[string]bool) {
	horses := make(map[int]int)
	codes := make(map[int]map[string]bool)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		m := raceRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		race := atoi(m[1])
		if race == 0 {
			continue
		}

		horses[race] = len(slotRe.FindAllString(line, -1)) + len(scrRe.FindAllString(line, -1))

		set := codes[race]
		if set == nil {
			set = make(map[string]bool)
			codes[race] = set
		}
		for _, cm := range codeRe.FindAllStringSubmatch(line, -1) {
			set[cm[1]] = true
		}

		// Extra pools often wrap onto indented lines ("   DOB( 1,2 )").
		for j := i + 1; j < len(lines) && j-(i+1) < maxContinuationLines; j++ {
			next := lines[j]
			if strings.TrimSpace(next) == "" {
				break
			}
			if !strings.HasPrefix(next, " ") && !strings.HasPrefix(next, "\t") {
				break
			}
			if newRaceRe.MatchString(next) {
				break
			}
			for _, cm := range codeRe.FindAllStringSubmatch(next, -1) {
				set[cm[1]] = true
			}
		}
	}
	return horses, codes
}

// rsmStakes runs the second pass over the RSM TABLE section. knownRaces is
// the availability pass's race universe: "ALL" rows expand over it rather
// than a fixed count, and when it is non-empty no stake is assigned to a
// race outside it.
func rsmStakes(content string, knownRaces []int) map[int]map[string]float64 {
	section, ok := rsmSection(content)
	if !ok {
		slog.Debug("report: no RSM TABLE section")
		return nil
	}

	stakes := make(map[int]map[string]float64)
	for _, m := range rsmRowRe.FindAllStringSubmatch(section, -1) {
		rangeText := strings.TrimSpace(m[1])
		code := rsmCodes[strings.TrimSpace(m[2])]
		if code == "" {
			continue
		}
		amount, parsed := money.Parse(m[3])
		if !parsed {
			slog.Debug("report: unparseable RSM amount", "token", m[3], "range", rangeText)
			continue
		}

		var races []int
		if strings.EqualFold(rangeText, "ALL") && len(knownRaces) > 0 {
			races = knownRaces
		} else {
			races = racerange.Expand(rangeText, nil)
		}

		for _, race := range races {
			if len(knownRaces) > 0 && !contains(knownRaces, race) {
				continue
			}
			if stakes[race] == nil {
				stakes[race] = make(map[string]float64)
			}
			stakes[race][code] = amount
		}
	}
	return stakes
}

// MinimumsByRace is the stakes-only view of the report used for venues
// whose program carries no availability table: only the RSM TABLE is read.
// "ALL" expands from 1 to the highest race named by the other rows
// (falling back to 1..15 when every row is "ALL").
func MinimumsByRace(content string) map[int]map[string]float64 {
	section, ok := rsmSection(content)
	if !ok {
		return map[int]map[string]float64{}
	}

	rows := rsmRowRe.FindAllStringSubmatch(section, -1)

	maxRace := 0
	for _, m := range rows {
		rangeText := strings.TrimSpace(m[1])
		if strings.EqualFold(rangeText, "ALL") {
			continue
		}
		for _, race := range racerange.Expand(rangeText, nil) {
			if race > maxRace {
				maxRace = race
			}
		}
	}

	stakes := make(map[int]map[string]float64)
	for _, m := range rows {
		rangeText := strings.TrimSpace(m[1])
		code := rsmCodes[strings.TrimSpace(m[2])]
		if code == "" {
			continue
		}
		amount, parsed := money.Parse(m[3])
		if !parsed {
			continue
		}

		var races []int
		if strings.EqualFold(rangeText, "ALL") {
			hi := maxRace
			if hi == 0 {
				hi = 15
			}
			for race := 1; race <= hi; race++ {
				races = append(races, race)
			}
		} else {
			races = racerange.Expand(rangeText, nil)
		}

		for _, race := range races {
			if stakes[race] == nil {
				stakes[race] = make(map[string]float64)
			}
			stakes[race][code] = amount
		}
	}
	return stakes
}

// DefaultMinimums reads the CARD DEFAULT MINIMUMS section. Parse never
// consults it — a race-level stake missing from the RSM TABLE stays
// unknown — but the values are useful for display.
func DefaultMinimums(content string) map[string]float64 {
	idx := strings.Index(content, defaultsMarker)
	if idx < 0 {
		return nil
	}
	section := content[idx:]
	if len(section) > 500 {
		section = section[:500]
	}

	out := make(map[string]float64)
	for _, m := range defaultMinimumRe.FindAllStringSubmatch(section, -1) {
		if v, ok := money.Parse(m[2]); ok {
			out[m[1]] = v
		}
	}
	return out
}

// rsmSection cuts the RSM TABLE block out of the report: from the marker
// to the first of a triple blank line or the TIM BETTING header.
func rsmSection(content string) (string, bool) {
	start := strings.Index(content, rsmMarker)
	if start < 0 {
		return "", false
	}
	section := content[start:]

	end := -1
	if i := strings.Index(section, "\n\n\n"); i >= 0 {
		end = i
	}
	if i := strings.Index(section, rsmEndMarker); i >= 0 && (end < 0 || i < end) {
		end = i
	}
	if end >= 0 {
		section = section[:end]
	}
	return section, true
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func contains(nums []int, n int) bool {
	for _, v := range nums {
		if v == n {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
