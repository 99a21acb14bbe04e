// Package money parses stake amounts as they appear in race programs and
// betting-configuration reports. The sources mix es-AR formatting
// ("5.000", "1.000,50") with plain decimals ("5.5", "1000.50"), so the
// parser has to disambiguate the separators instead of trusting a single
// locale.
package money

import (
	"strconv"
	"strings"
)

// Parse converts a raw amount token to a float. Rules, in order:
//
//   - token contains a comma: periods are thousands separators (stripped),
//     the comma is the decimal point ("1.000,50" -> 1000.5)
//   - token contains only periods: if every segment is digits and the last
//     segment has exactly three, the periods group thousands
//     ("5.000" -> 5000); otherwise the token is a plain decimal ("5.5" -> 5.5)
//   - no separators: plain number
//
// The three-trailing-digits rule cannot tell "1.234" the amount from
// "1.234" the decimal; thousands grouping wins, which matches how the
// source documents actually print stakes. Returns ok=false for empty input
// or anything that still fails to parse.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		return parseFloat(s)
	}

	if strings.Contains(s, ".") {
		if isThousandsGrouped(s) {
			return parseFloat(strings.ReplaceAll(s, ".", ""))
		}
		return parseFloat(s)
	}

	return parseFloat(s)
}

// isThousandsGrouped reports whether a periods-only token like "5.000" or
// "1.234.567" is a thousands-grouped integer: all segments numeric and the
// segment after the final period exactly three digits long.
func isThousandsGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return len(parts[len(parts)-1]) == 3
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
