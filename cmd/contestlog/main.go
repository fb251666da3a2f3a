// Command contestlog analyzes ADIF contest logs: Run/S&P classification,
// operator sessions, silent periods, time reconciliation, and aggregate
// tables, rendered as a text report with optional JSON and SQLite archive.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"contestlog/adif"
	"contestlog/analysis"
	"contestlog/archive"
	"contestlog/config"
	"contestlog/report"
)

var (
	flagConfig  string
	flagOutput  string
	flagJSON    bool
	flagArchive bool
	flagLogName string
)

func main() {
	// Optional .env for local overrides (CONTESTLOG_CONFIG etc.). Absence
	// is the normal case.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "contestlog",
		Short:         "Contest log analytics for ADIF files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file.adi> [file.adi ...]",
		Short: "Analyze one or more ADIF logs and write the summary report",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&flagConfig, "config", "c", defaultConfigPath(), "YAML config file")
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "report file (default: <stem>_analysis.txt)")
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "also write the JSON result")
	analyzeCmd.Flags().BoolVar(&flagArchive, "archive", false, "store parsed QSOs in the SQLite archive")
	analyzeCmd.Flags().StringVar(&flagLogName, "log-name", "", "archive batch name (default: first input stem)")
	root.AddCommand(analyzeCmd)

	if err := root.Execute(); err != nil {
		log.Fatalf("contestlog: %v", err)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("CONTESTLOG_CONFIG"); p != "" {
		return p
	}
	return "contestlog.yaml"
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	records, err := adif.ParseFiles(args)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no usable QSO records in %d input file(s)", len(args))
	}

	opts := analysis.Options{
		GapThresholdMinutes: cfg.Analysis.GapThresholdMinutes,
		SPThresholdMHz:      cfg.Analysis.SPThresholdMHz(),
	}
	res := analysis.Analyze(records, opts)

	text := report.Render(res)
	fmt.Println(text)
	printWarnings(report.Warnings(res))

	outPath := flagOutput
	if outPath == "" {
		outPath = config.ExpandTemplate(cfg.Report.TextTemplate, args[0])
	}
	if err := os.WriteFile(outPath, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("report written to %s", outPath)

	if flagJSON || cfg.Report.WriteJSON {
		jsonPath := config.ExpandTemplate(cfg.Report.JSONTemplate, args[0])
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create json output: %w", err)
		}
		if err := report.WriteJSON(f, res); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close json output: %w", err)
		}
		log.Printf("json written to %s", jsonPath)
	}

	if flagArchive || cfg.Archive.Enabled {
		logName := flagLogName
		if logName == "" {
			logName = config.ExpandTemplate("{STEM}", args[0])
		}
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.StoreLog(logName, records); err != nil {
			return err
		}
		log.Printf("archived %d QSOs as %q in %s", len(records), logName, cfg.Archive.DBPath)
	}
	return nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	warn := func(format string, a ...any) { fmt.Printf(format+"\n", a...) }
	if term.IsTerminal(int(os.Stdout.Fd())) {
		c := color.New(color.FgYellow, color.Bold)
		warn = func(format string, a ...any) { c.Printf(format+"\n", a...) }
	}
	for _, w := range warnings {
		warn("WARNING: %s", w)
	}
}
