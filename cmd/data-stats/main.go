package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/theimaginaryfoundation/numenera-stats/stats"
	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stages := allStages
	if cfg.OnlyStage != "" {
		stages = []string{strings.ToLower(strings.TrimSpace(cfg.OnlyStage))}
	} else if cfg.FromStage != "" {
		stages = stagesFrom(stages, cfg.FromStage)
	}

	for _, stage := range stages {
		start := time.Now()
		if err := runStage(ctx, stage, cfg, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "stage %s failed: %s\n", stage, err.Error())
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ok: stage %s (%s)\n", stage, time.Since(start).Round(time.Millisecond))
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.DataRoot, "data-root", "", "Game data directory (StreamingAssets/data)")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Localization language (localized/<lang>/text)")
	fs.StringVar(&cfg.RulesPath, "rules", "", "TOML rules file for the words stage (defaults to the built-in rules)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose diagnostics for every stage")

	fs.StringVar(&cfg.FromStage, "from-stage", "", "Start at stage: "+strings.Join(allStages, "|"))
	fs.StringVar(&cfg.OnlyStage, "only-stage", "", "Run only one stage: "+strings.Join(allStages, "|"))

	fs.StringVar(&cfg.OutDir, "out-dir", "", "Also write each stage's JSON report to <out-dir>/<stage>.json")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print JSON reports")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s -data-root <dir> [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/data-stats -data-root StreamingAssets/data -out-dir reports")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.DataRoot != "" {
		cfg.DataRoot = filepath.Clean(cfg.DataRoot)
	}
	if cfg.OutDir != "" {
		cfg.OutDir = filepath.Clean(cfg.OutDir)
	}
	if cfg.RulesPath != "" {
		cfg.RulesPath = filepath.Clean(cfg.RulesPath)
	}
	return cfg, nil
}

// runStage runs one stage in-process and prints its text report to out. With -out-dir the
// JSON report is also written to <out-dir>/<stage>.json, replacing any earlier one.
func runStage(ctx context.Context, stage string, cfg Config, out, warn io.Writer) error {
	fmt.Fprintf(out, "== %s ==\n", stage)

	var report interface{ WriteText(io.Writer) error }
	switch stage {
	case "tides":
		r, err := runTides(ctx, cfg, out, warn)
		if err != nil {
			return err
		}
		report = r
	case "words":
		r, err := runWords(ctx, cfg, out, warn)
		if err != nil {
			return err
		}
		report = r
	default:
		return fmt.Errorf("unknown stage: %s", stage)
	}

	if err := report.WriteText(out); err != nil {
		return err
	}
	if cfg.OutDir != "" {
		reportPath := filepath.Join(cfg.OutDir, stage+".json")
		if err := fileutils.WriteJSONFileAtomic(reportPath, report, cfg.Pretty); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func runTides(ctx context.Context, cfg Config, diag, warn io.Writer) (stats.TideReport, error) {
	files, err := stats.CollectInputs([]string{filepath.Join(cfg.DataRoot, "conversations")}, stats.ConversationExt, warn)
	if err != nil {
		return stats.TideReport{}, err
	}
	counter, err := stats.NewTideCounter(stats.TideCounterOptions{
		Lang:            cfg.Lang,
		Verbose:         cfg.Verbose,
		FocusColor:      stats.Indigo,
		FocusMagnitudes: []stats.Magnitude{stats.Moderate, stats.Huge},
		Diag:            diag,
	})
	if err != nil {
		return stats.TideReport{}, err
	}
	if err := counter.Run(ctx, files); err != nil {
		return stats.TideReport{}, err
	}
	return stats.BuildTideReport(counter.Tally), nil
}

func runWords(ctx context.Context, cfg Config, diag, warn io.Writer) (stats.WordReport, error) {
	files, err := stats.CollectInputs([]string{filepath.Join(cfg.DataRoot, stats.LocalizedTextDir(cfg.Lang))}, stats.StringTableExt, warn)
	if err != nil {
		return stats.WordReport{}, err
	}
	rules, err := stats.LoadRules(cfg.RulesPath)
	if err != nil {
		return stats.WordReport{}, err
	}
	splitter, err := stats.NewPunktSplitter()
	if err != nil {
		return stats.WordReport{}, err
	}
	counter, err := stats.NewWordCounter(stats.WordCounterOptions{
		Lang:            cfg.Lang,
		Rules:           rules,
		Splitter:        splitter,
		GenderDiffMin:   3,
		Verbose:         cfg.Verbose,
		VerboseMinWords: 5000,
		Diag:            diag,
	})
	if err != nil {
		return stats.WordReport{}, err
	}
	if err := counter.Run(ctx, files); err != nil {
		return stats.WordReport{}, err
	}
	return stats.BuildWordReport(counter.Tally), nil
}

func stagesFrom(stages []string, from string) []string {
	from = strings.ToLower(strings.TrimSpace(from))
	for i, s := range stages {
		if s == from {
			return stages[i:]
		}
	}
	return stages
}
