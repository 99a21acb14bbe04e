// Package racerange expands the compact race-list expressions used by
// betting-configuration reports and race programs: "ALL", "1-13",
// "2,4,6-7,10", or a single race number, optionally with the ordinal
// glyphs the programs attach to digits ("2ª", "12º").
package racerange

import (
	"strconv"
	"strings"
)

// fallbackMax bounds "ALL" when the caller has no race universe to offer.
const fallbackMax = 15

// Expand resolves a race-range expression to an ordered list of race
// numbers. "ALL" expands to universe when it is non-empty, else to
// 1..15. Segments that fail integer parsing are dropped.
func Expand(expr string, universe []int) []int {
	expr = strings.ToUpper(strings.TrimSpace(expr))

	if expr == "ALL" {
		if len(universe) > 0 {
			out := make([]int, len(universe))
			copy(out, universe)
			return out
		}
		out := make([]int, 0, fallbackMax)
		for n := 1; n <= fallbackMax; n++ {
			out = append(out, n)
		}
		return out
	}

	var races []int
	for _, segment := range strings.Split(expr, ",") {
		races = append(races, expandSegment(segment)...)
	}
	return races
}

// expandSegment handles one comma-delimited piece: either "N-M" or "N".
func expandSegment(segment string) []int {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil
	}

	if strings.Contains(segment, "-") {
		parts := strings.SplitN(segment, "-", 2)
		lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return nil
		}
		var out []int
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
		return out
	}

	n, err := strconv.Atoi(segment)
	if err != nil {
		return nil
	}
	return []int{n}
}

// StripOrdinals replaces the ordinal glyphs programs print after race
// numbers (ª, º, °) with spaces, so run-together lists like "2ª4ª6ª"
// keep their numbers apart. The plain "a"/"o" the PDF text layer
// sometimes degrades them to is left alone; only the glyph forms are
// safe to touch.
func StripOrdinals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'ª', 'º', '°':
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
