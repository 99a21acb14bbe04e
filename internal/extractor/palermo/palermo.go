// Package palermo extracts betting data from the Palermo program, which
// uses a different layout than the generic race program: date-scoped
// sections and two-column rows with the bet name and amount on the left
// ("CUATRIFECTA: ($ 500.-)") and the races it applies to on the right
// ("2ª4ª6ª9ª; 12ª" or "DESDE LA 1ª HASTA LA 11ª").
package palermo

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ocampos/turfcheck/internal/pkg/money"
	"github.com/ocampos/turfcheck/internal/pkg/racerange"
)

// dateRe matches 01/02/2026 and 1/2/26 style tokens.
var dateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)

// rowRe matches a bet row: description, amount in parentheses (the "$"
// prefix and the ".-" suffix are noise), then the race-range column.
var rowRe = regexp.MustCompile(`^(.+?)\(\s*[\$\s]*([\d.,]+)(?:\.-)?\s*\)\s+(.+)`)

// spanRe matches the explicit "DESDE LA 1ª HASTA LA 11ª" range phrase.
var spanRe = regexp.MustCompile(`DESDE\s+LA\s+(\d+)\s*[ªº]?\s+HASTA\s+LA\s+(\d+)\s*[ªº]?`)

var numberRe = regexp.MustCompile(`\d+`)

// descriptionCodes maps left-column text to a bet code by substring, first
// match wins. The order is load-bearing: "cuatrifecta" contains
// "trifecta" and "doble extra" contains "doble", so the more specific
// entry must be checked first.
var descriptionCodes = []struct {
	substrings []string
	code       string
}{
	{[]string{"cuatrifecta"}, "CUA"},
	{[]string{"trifecta"}, "TRI"},
	{[]string{"doble extra"}, "DOB"},
	{[]string{"doble"}, "DOB"},
	{[]string{"5 y 6", "5y6", "5 & 6"}, "CAD"},
	{[]string{"pick cuatro", "pick 4"}, "QTN"},
	{[]string{"pick cinco", "pick 5"}, "QTP"},
	{[]string{"exacta"}, "EXA"},
	{[]string{"triplo"}, "TPL"},
	{[]string{"imperfecta"}, "IMP"},
}

// blanketCodes are completed by FillBlanketRates: a single line for one of
// these denotes a blanket rate for the whole card.
var blanketCodes = []string{"EXA", "TRI"}

// CodeSummary tracks how a bet code appeared within one date: how many
// lines contributed it, the last amount seen, and the races it touched.
type CodeSummary struct {
	Lines  int
	Amount float64
	Races  map[int]bool
}

// Program is the extracted Palermo program: the dates discovered in
// reading order, the per-date per-race code→amount view, and the per-date
// code summaries.
type Program struct {
	Dates   []string
	ByDate  map[string]map[int]map[string]float64
	Summary map[string]map[string]*CodeSummary
}

// ParsePages scans the program pages line by line. A bet row only counts
// once a date has been seen on the current page; the most recent date owns
// the rows that follow it.
func ParsePages(pages []string) *Program {
	p := &Program{
		ByDate:  make(map[string]map[int]map[string]float64),
		Summary: make(map[string]map[string]*CodeSummary),
	}

	for _, text := range pages {
		currentDate := ""

		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			for _, d := range dateRe.FindAllString(line, -1) {
				if !containsString(p.Dates, d) {
					p.Dates = append(p.Dates, d)
				}
				currentDate = d
			}

			if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
				continue
			}
			m := rowRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if currentDate == "" {
				slog.Debug("palermo: bet row before any date, skipping", "line", line)
				continue
			}

			code := MapDescription(m[1])
			if code == "" {
				continue
			}
			amount, ok := money.Parse(m[2])
			if !ok {
				slog.Debug("palermo: unparseable amount", "token", m[2], "line", line)
				continue
			}
			races := extractRaces(m[3])
			if len(races) == 0 {
				continue
			}

			p.record(currentDate, code, amount, races)
		}
	}
	return p
}

func (p *Program) record(date, code string, amount float64, races []int) {
	if p.ByDate[date] == nil {
		p.ByDate[date] = make(map[int]map[string]float64)
	}
	if p.Summary[date] == nil {
		p.Summary[date] = make(map[string]*CodeSummary)
	}
	sum := p.Summary[date][code]
	if sum == nil {
		sum = &CodeSummary{Races: make(map[int]bool)}
		p.Summary[date][code] = sum
	}
	sum.Lines++
	sum.Amount = amount

	for _, race := range races {
		if p.ByDate[date][race] == nil {
			p.ByDate[date][race] = make(map[string]float64)
		}
		p.ByDate[date][race][code] = amount
		sum.Races[race] = true
	}
}

// BetsForDate returns a copy of the per-race view for one date. An empty
// date merges every date, later dates overwriting earlier ones.
func (p *Program) BetsForDate(date string) map[int]map[string]float64 {
	out := make(map[int]map[string]float64)
	merge := func(src map[int]map[string]float64) {
		for race, bets := range src {
			if out[race] == nil {
				out[race] = make(map[string]float64)
			}
			for code, amount := range bets {
				out[race][code] = amount
			}
		}
	}
	if date == "" {
		for _, d := range p.Dates {
			merge(p.ByDate[d])
		}
		return out
	}
	merge(p.ByDate[date])
	return out
}

// FillBlanketRates applies the single-line convention: when EXA or TRI
// appears on exactly one line for the date, that amount is a blanket rate
// for the whole card, so it is propagated to every report race that does
// not already carry the code. bets is modified in place and returned.
func (p *Program) FillBlanketRates(bets map[int]map[string]float64, date string, reportRaces []int) map[int]map[string]float64 {
	summary := p.Summary[date]
	if summary == nil {
		return bets
	}
	for _, code := range blanketCodes {
		sum := summary[code]
		if sum == nil || sum.Lines != 1 {
			continue
		}
		for _, race := range reportRaces {
			if bets[race] == nil {
				bets[race] = make(map[string]float64)
			}
			if _, ok := bets[race][code]; !ok {
				bets[race][code] = sum.Amount
			}
		}
	}
	return bets
}

// MapDescription resolves the left-column text to a bet code through the
// ordered substring table. Empty string when nothing matches.
func MapDescription(description string) string {
	text := strings.ToLower(strings.TrimSpace(description))
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "  ", " ")

	for _, entry := range descriptionCodes {
		for _, sub := range entry.substrings {
			if strings.Contains(text, sub) {
				return entry.code
			}
		}
	}
	return ""
}

// extractRaces reads the right column: either the explicit
// "DESDE LA Xª HASTA LA Yª" span or a plain list of ordinal-suffixed
// numbers ("2ª4ª6ª9ª; 12ª" -> 2,4,6,9,12).
func extractRaces(rangeText string) []int {
	upper := strings.ToUpper(rangeText)

	if m := spanRe.FindStringSubmatch(upper); m != nil {
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && lo <= hi {
			var out []int
			for n := lo; n <= hi; n++ {
				out = append(out, n)
			}
			return out
		}
	}

	var out []int
	for _, tok := range numberRe.FindAllString(racerange.StripOrdinals(rangeText), -1) {
		if n, err := strconv.Atoi(tok); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
