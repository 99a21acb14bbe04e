// Package reconcile diffs two canonical views of the same race day and
// reports every discrepancy: races present on one side only, horse-count
// mismatches, bets offered by one source only, and minimum stakes that
// disagree.
package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ocampos/turfcheck/internal/pkg/models"
)

// amountTolerance absorbs float noise when both sides have a stake.
const amountTolerance = 0.01

// Options controls a comparison run. Labels name the two sides in the
// discrepancy messages.
type Options struct {
	LeftLabel  string
	RightLabel string
	// CompareHorses toggles the horse-count check; the Palermo program
	// carries no horse counts, so its comparison turns this off.
	CompareHorses bool
	// PresenceOnly codes are checked for existence on both sides but
	// never for amount.
	PresenceOnly map[string]bool
}

// ProgramReportOptions is the generic program-vs-report comparison: horse
// counts compared, straight bets (GAN/SEG/TER) by presence only.
func ProgramReportOptions() Options {
	return Options{
		LeftLabel:     "program",
		RightLabel:    "report",
		CompareHorses: true,
		PresenceOnly:  map[string]bool{"GAN": true, "SEG": true, "TER": true},
	}
}

// PalermoOptions compares only bet sets and stakes.
func PalermoOptions() Options {
	return Options{
		LeftLabel:  "Palermo program",
		RightLabel: "report",
	}
}

// Compare diffs two cards. Races are visited in ascending order; within a
// race: presence, horse count, bet-set differences, then stake values over
// the sorted common codes. Matches is true iff nothing differed.
func Compare(left, right models.Card, opts Options) models.Comparison {
	var diffs []string

	for _, race := range unionRaces(left, right) {
		l, inLeft := left[race]
		r, inRight := right[race]

		if !inLeft {
			diffs = append(diffs, fmt.Sprintf("Race %d: present in %s but not in %s", race, opts.RightLabel, opts.LeftLabel))
			continue
		}
		if !inRight {
			diffs = append(diffs, fmt.Sprintf("Race %d: present in %s but not in %s", race, opts.LeftLabel, opts.RightLabel))
			continue
		}

		if opts.CompareHorses && l.HorseCount != r.HorseCount {
			diffs = append(diffs, fmt.Sprintf("Race %d: horse count differs (%s: %d, %s: %d)",
				race, opts.LeftLabel, l.HorseCount, opts.RightLabel, r.HorseCount))
		}

		onlyLeft, onlyRight, common := splitCodes(l.Bets, r.Bets)
		if len(onlyLeft) > 0 {
			diffs = append(diffs, fmt.Sprintf("Race %d: bets present in %s but not in %s: %s",
				race, opts.LeftLabel, opts.RightLabel, strings.Join(onlyLeft, ", ")))
		}
		if len(onlyRight) > 0 {
			diffs = append(diffs, fmt.Sprintf("Race %d: bets present in %s but not in %s: %s",
				race, opts.RightLabel, opts.LeftLabel, strings.Join(onlyRight, ", ")))
		}

		for _, code := range common {
			if opts.PresenceOnly[code] {
				continue
			}
			diffs = append(diffs, compareAmounts(race, code, l.Bets[code], r.Bets[code], opts)...)
		}
	}

	return models.Comparison{Matches: len(diffs) == 0, Discrepancies: diffs}
}

func compareAmounts(race int, code string, l, r *float64, opts Options) []string {
	switch {
	case l != nil && r != nil:
		d := *l - *r
		if d < 0 {
			d = -d
		}
		if d > amountTolerance {
			return []string{fmt.Sprintf("Race %d: %s amount differs (%s: %s, %s: %s)",
				race, code, opts.LeftLabel, formatAmount(*l), opts.RightLabel, formatAmount(*r))}
		}
	case l != nil:
		return []string{fmt.Sprintf("Race %d: %s is %s in %s but unknown in %s",
			race, code, formatAmount(*l), opts.LeftLabel, opts.RightLabel)}
	case r != nil:
		return []string{fmt.Sprintf("Race %d: %s is %s in %s but unknown in %s",
			race, code, formatAmount(*r), opts.RightLabel, opts.LeftLabel)}
	}
	return nil
}

// CardFromStakes lifts a per-race code→amount map (every amount known)
// into a canonical card, for sources that carry no horse counts.
func CardFromStakes(stakes map[int]map[string]float64) models.Card {
	card := make(models.Card)
	for race, bets := range stakes {
		entry := &models.Race{Number: race, Bets: make(map[string]*float64, len(bets))}
		for code, amount := range bets {
			v := amount
			entry.Bets[code] = &v
		}
		card[race] = entry
	}
	return card
}

func unionRaces(left, right models.Card) []int {
	seen := make(map[int]bool)
	var races []int
	for n := range left {
		if !seen[n] {
			seen[n] = true
			races = append(races, n)
		}
	}
	for n := range right {
		if !seen[n] {
			seen[n] = true
			races = append(races, n)
		}
	}
	sort.Ints(races)
	return races
}

// splitCodes partitions the two bet sets into left-only, right-only and
// common codes, each sorted for stable output.
func splitCodes(l, r map[string]*float64) (onlyLeft, onlyRight, common []string) {
	for code := range l {
		if _, ok := r[code]; ok {
			common = append(common, code)
		} else {
			onlyLeft = append(onlyLeft, code)
		}
	}
	for code := range r {
		if _, ok := l[code]; !ok {
			onlyRight = append(onlyRight, code)
		}
	}
	sort.Strings(onlyLeft)
	sort.Strings(onlyRight)
	sort.Strings(common)
	return onlyLeft, onlyRight, common
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
