package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ocampos/turfcheck/internal/extractor/palermo"
	"github.com/ocampos/turfcheck/internal/extractor/program"
	"github.com/ocampos/turfcheck/internal/extractor/report"
	"github.com/ocampos/turfcheck/internal/notify"
	"github.com/ocampos/turfcheck/internal/pdftext"
	"github.com/ocampos/turfcheck/internal/pkg/config"
	"github.com/ocampos/turfcheck/internal/pkg/logging"
	"github.com/ocampos/turfcheck/internal/pkg/models"
	"github.com/ocampos/turfcheck/internal/reconcile"
)

// Exit codes: 0 sources match, 1 discrepancies found, 2 the comparison
// could not be produced.
const (
	exitMatch    = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	var (
		configPath  string
		venue       string
		programPath string
		reportPath  string
		date        string
		listDates   bool
		sendNotify  bool
	)

	defaultConfig := os.Getenv("CONFIG_PATH")

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&venue, "venue", "sanisidro", "Venue: sanisidro, laplata or palermo")
	flag.StringVar(&programPath, "program", "", "Path to the official program (PDF or text)")
	flag.StringVar(&reportPath, "report", "", "Path to the betting-configuration report (TXT)")
	flag.StringVar(&date, "date", "", "Race date to compare (palermo only, dd/mm/yyyy)")
	flag.BoolVar(&listDates, "list-dates", false, "List the dates found in the palermo program and exit")
	flag.BoolVar(&sendNotify, "notify", false, "Send the comparison result to Telegram")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(exitError)
		}
		cfg = loaded
	}
	logging.SetupLogger(&cfg.Logging, "turfcheck")

	if programPath == "" {
		fatal("-program is required")
	}

	var result models.Comparison
	switch strings.ToLower(venue) {
	case "sanisidro", "laplata":
		if reportPath == "" {
			fatal("-report is required")
		}
		result = runGeneric(venue, programPath, reportPath)
	case "palermo":
		result = runPalermo(programPath, reportPath, date, listDates)
	default:
		fatal(fmt.Sprintf("unknown venue %q (want sanisidro, laplata or palermo)", venue))
	}

	printVerdict(venue, result)

	if sendNotify {
		notifier := newNotifier(cfg)
		if err := notifier.SendComparison(venue, result); err != nil {
			slog.Error("Failed to send telegram notification", "error", err)
		}
	}

	if result.Matches {
		os.Exit(exitMatch)
	}
	os.Exit(exitMismatch)
}

// runGeneric compares an official program against the configuration report
// for the venues that share the generic page layout.
func runGeneric(venue, programPath, reportPath string) models.Comparison {
	pages, err := pdftext.Pages(programPath)
	if err != nil {
		fatalErr("Failed to read program", err)
	}
	observations := program.Observations(pages)
	programCard := program.Normalize(observations)
	slog.Info("Program extracted", "venue", venue, "races", len(programCard))

	content, err := pdftext.ReadAll(reportPath)
	if err != nil {
		fatalErr("Failed to read report", err)
	}
	reportCard := report.Parse(content)
	slog.Info("Report extracted", "venue", venue, "races", len(reportCard))

	printCard("PROGRAM DATA", programCard, true)
	printCard("REPORT DATA", reportCard, true)

	return reconcile.CompareProgramReport(pages, content, observations)
}

// runPalermo compares the date-scoped Palermo program against the stakes
// view of the report.
func runPalermo(programPath, reportPath, date string, listDates bool) models.Comparison {
	pages, err := pdftext.Pages(programPath)
	if err != nil {
		fatalErr("Failed to read program", err)
	}
	prog := palermo.ParsePages(pages)
	if len(prog.Dates) == 0 {
		fatal("no dates found in the palermo program")
	}

	if listDates {
		fmt.Println("Dates found in the program:")
		for _, d := range prog.Dates {
			fmt.Printf("  %s\n", d)
		}
		os.Exit(exitMatch)
	}

	switch {
	case date == "" && len(prog.Dates) == 1:
		date = prog.Dates[0]
		slog.Info("Using the only date found in the program", "date", date)
	case date == "":
		fatal(fmt.Sprintf("program has several dates, pick one with -date: %s", strings.Join(prog.Dates, ", ")))
	}

	if reportPath == "" {
		fatal("-report is required")
	}
	content, err := pdftext.ReadAll(reportPath)
	if err != nil {
		fatalErr("Failed to read report", err)
	}
	reportStakes := report.MinimumsByRace(content)

	// Tables show what each source states explicitly; the blanket-rate
	// completion only feeds the comparison.
	printCard("PROGRAM DATA (PALERMO, "+date+")", reconcile.CardFromStakes(prog.BetsForDate(date)), false)
	printCard("REPORT DATA (PALERMO)", reconcile.CardFromStakes(reportStakes), false)

	return reconcile.ComparePalermo(prog, date, content)
}

func newNotifier(cfg *config.Config) *notify.TelegramNotifier {
	token := cfg.Telegram.BotToken
	if env := os.Getenv("TELEGRAM_BOT_TOKEN"); env != "" {
		token = env
	}
	chatID := cfg.Telegram.ChatID
	if env := os.Getenv("TELEGRAM_CHAT_ID"); env != "" {
		if id, err := strconv.ParseInt(env, 10, 64); err == nil {
			chatID = id
		}
	}
	if !cfg.Telegram.Enabled && token == "" {
		slog.Warn("Telegram notification requested but not configured")
		return nil
	}
	return notify.NewTelegramNotifier(token, chatID)
}

// printCard renders the per-race table the operator checks against the
// discrepancy list.
func printCard(title string, card models.Card, withHorses bool) {
	fmt.Printf("\n  %s\n", title)
	fmt.Println("  " + strings.Repeat("-", 62))
	if withHorses {
		fmt.Println("  Race     | Horses | Bets / stakes")
		fmt.Println("  ---------+--------+----------------------------------------")
	} else {
		fmt.Println("  Race     | Bets / stakes")
		fmt.Println("  ---------+-------------------------------------------------")
	}
	for _, n := range card.Races() {
		race := card[n]
		if withHorses {
			fmt.Printf("  %8d | %6d | %s\n", n, race.HorseCount, models.FormatBets(race.Bets))
		} else {
			fmt.Printf("  %8d | %s\n", n, models.FormatBets(race.Bets))
		}
	}
	fmt.Println()
}

func printVerdict(venue string, result models.Comparison) {
	if result.Matches {
		fmt.Printf("COMPARISON %s: program and report match.\n", strings.ToUpper(venue))
		return
	}
	fmt.Printf("COMPARISON %s: discrepancies found:\n", strings.ToUpper(venue))
	for _, d := range result.Discrepancies {
		fmt.Printf("  - %s\n", d)
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(exitError)
}

func fatalErr(msg string, err error) {
	slog.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(exitError)
}
