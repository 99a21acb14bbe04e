// Package betcode classifies the free-text bet names found in race
// programs: it decides which multi-stage ("pase") variants are out of
// scope, collapses verbose names to their base bet family, and maps the
// family to its canonical short code.
//
// The three operations are always applied in sequence: IsExcluded on the
// raw segment, then Normalize, then Abbreviate.
package betcode

import (
	"regexp"
	"strings"
)

// Canonical bet codes. Names that do not map to one of these pass
// through Abbreviate unchanged, so a comparison surfaces them instead of
// silently dropping them.
const (
	Win        = "GAN" // ganador
	Place      = "SEG" // segundo
	Show       = "TER" // tercero
	Exacta     = "EXA"
	Trifecta   = "TRI"
	Imperfecta = "IMP"
	Superfecta = "CUA" // cuatrifecta
	Double     = "DOB" // doble
	Triple     = "TPL" // triplo
	Pick4      = "QTN" // cuaterna
	Pick5      = "QTP" // quintuplo
	Chain      = "CAD" // cadena
)

// abbreviations maps lowercased bet family names to their codes.
// Immutable; lookups only.
var abbreviations = map[string]string{
	"ganador":     Win,
	"segundo":     Place,
	"tercero":     Show,
	"exacta":      Exacta,
	"trifecta":    Trifecta,
	"imperfecta":  Imperfecta,
	"cuatrifecta": Superfecta,
	"doble":       Double,
	"triplo":      Triple,
	"cuaterna":    Pick4,
	"quintuplo":   Pick5,
	"cadena":      Chain,
}

// Stage qualifiers from the second leg onward are excluded; "final" alone
// is a later leg too. "Final 1er.Pase" (the closing leg of a
// first-stage pool, e.g. "Cuaterna Final 1er.Pase") stays in.
var (
	laterStageRe = regexp.MustCompile(`(?i)2do\.?\s*pase|3er\.?\s*pase|4to\.?\s*pase|5to\.?\s*pase|[uú]ltimo\s*pase`)
	finalRe      = regexp.MustCompile(`(?i)\bfinal\b|final\s*pase`)
	firstStageRe = regexp.MustCompile(`(?i)\b1er\.?\s*pase\b|\b1re\.?\s*pase\b`)
)

// IsExcluded reports whether a bet name denotes a later stage of a
// multi-leg pool and must be dropped. Names beginning with "doble" are a
// separate bet family (Doble Plus, Doble Final Plus, ...) and are never
// excluded.
func IsExcluded(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), "doble") {
		return false
	}
	if laterStageRe.MatchString(name) {
		return true
	}
	if finalRe.MatchString(name) {
		return !firstStageRe.MatchString(name)
	}
	return false
}

// Normalize collapses a verbose bet name to its base family: if the name
// mentions "pase" anywhere or its first word is a known family, only the
// first word survives. Qualifiers like "Con Jackpot", "Extra", "Plus" or
// "(Única Base)" are discarded that way.
//
//	"Cadena Con Jackpot 1er.Pase (Única Base)" -> "Cadena"
//	"Doble Plus"                               -> "Doble"
//	"Imperfecta"                               -> "Imperfecta"
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return name
	}
	first := words[0]
	if strings.Contains(strings.ToLower(name), "pase") {
		return first
	}
	if _, ok := abbreviations[strings.ToLower(first)]; ok {
		return first
	}
	return name
}

// Abbreviate maps a bet family name to its canonical code,
// case-insensitively. Unknown names pass through unchanged.
func Abbreviate(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	if code, ok := abbreviations[strings.ToLower(name)]; ok {
		return code
	}
	return name
}
