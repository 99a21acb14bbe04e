package models

import (
	"fmt"
	"sort"
	"strings"
)

// BetObservation is one raw (race, horse count, bet code, amount) tuple as
// emitted by an extractor. AmountText is the untouched token from the source
// ("" when the source only signals that the bet exists). Observations are
// never mutated after extraction.
type BetObservation struct {
	Race       int
	HorseCount int
	Code       string
	AmountText string
}

// Race is the canonical per-race record built by a normalizer.
// Bets maps bet code to minimum stake; a nil amount means the source lists
// the bet but no stake could be determined for it.
type Race struct {
	Number     int
	HorseCount int
	Bets       map[string]*float64
}

// Card is one source's canonical view of the race day, keyed by race number.
type Card map[int]*Race

// Races returns the race numbers of the card in ascending order.
func (c Card) Races() []int {
	nums := make([]int, 0, len(c))
	for n := range c {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Comparison is the outcome of reconciling two cards. Matches is true iff
// Discrepancies is empty. Purely derived, never persisted.
type Comparison struct {
	Matches       bool
	Discrepancies []string
}

// codeOrder is the display order for bet codes (win/place/show first, then
// combination pools roughly by size). Unknown codes sort after these.
var codeOrder = []string{"GAN", "SEG", "TER", "EXA", "IMP", "TRI", "DOB", "TPL", "QTN", "QTP", "CAD", "CUA"}

func codeRank(code string) int {
	for i, c := range codeOrder {
		if c == code {
			return i
		}
	}
	return len(codeOrder)
}

// FormatBets renders a bet map as "GAN, IMP=1000, TRI=1000.50" with codes in
// display order. Whole amounts are printed without decimals.
func FormatBets(bets map[string]*float64) string {
	if len(bets) == 0 {
		return "-"
	}
	codes := make([]string, 0, len(bets))
	for code := range bets {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ri, rj := codeRank(codes[i]), codeRank(codes[j])
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		amount := bets[code]
		switch {
		case amount == nil:
			parts = append(parts, code)
		case *amount == float64(int64(*amount)):
			parts = append(parts, fmt.Sprintf("%s=%d", code, int64(*amount)))
		default:
			parts = append(parts, fmt.Sprintf("%s=%.2f", code, *amount))
		}
	}
	return strings.Join(parts, ", ")
}

// Amount is a convenience for building *float64 literals.
func Amount(v float64) *float64 { return &v }
