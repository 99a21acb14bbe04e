package reconcile

import (
	"sort"

	"github.com/ocampos/turfcheck/internal/extractor/palermo"
	"github.com/ocampos/turfcheck/internal/extractor/program"
	"github.com/ocampos/turfcheck/internal/extractor/report"
	"github.com/ocampos/turfcheck/internal/pkg/models"
)

// CompareProgramReport reconciles an official program (as page text)
// against the configuration report. Pass the observations when the program
// was already extracted to avoid scanning the pages twice; nil extracts
// them here.
func CompareProgramReport(pages []string, reportContent string, observations []models.BetObservation) models.Comparison {
	if observations == nil {
		observations = program.Observations(pages)
	}
	return Compare(program.Normalize(observations), report.Parse(reportContent), ProgramReportOptions())
}

// ComparePalermo reconciles one date of the Palermo program against the
// report's stakes-only view, applying the blanket-rate completion before
// the diff.
func ComparePalermo(prog *palermo.Program, date, reportContent string) models.Comparison {
	reportStakes := report.MinimumsByRace(reportContent)

	stakes := prog.BetsForDate(date)
	stakes = prog.FillBlanketRates(stakes, date, stakeRaces(reportStakes))

	return Compare(CardFromStakes(stakes), CardFromStakes(reportStakes), PalermoOptions())
}

func stakeRaces(stakes map[int]map[string]float64) []int {
	races := make([]int, 0, len(stakes))
	for n := range stakes {
		races = append(races, n)
	}
	sort.Ints(races)
	return races
}
