package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theimaginaryfoundation/numenera-stats/stats"
	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
	"github.com/theimaginaryfoundation/numenera-stats/stats/provider"
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

	if cfg.Schema {
		b, err := provider.DocumentSchema[stats.WordReport]()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, string(b))
		return
	}

	var reviewer stats.VariantReviewer
	if cfg.ReviewModel != "" {
		_ = godotenv.Load()
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
			os.Exit(2)
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		reviewer = openAIVariantReviewer{client: &client, model: cfg.ReviewModel}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := stats.CollectInputs(cfg.Paths, stats.StringTableExt, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	counter, err := newCounter(cfg, diagWriter(cfg, os.Stdout, os.Stderr), reviewer)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	start := time.Now()
	if err := counter.Run(ctx, files); err != nil {
		fmt.Fprintf(os.Stderr, "word count failed: %s\n", err.Error())
		os.Exit(1)
	}

	report := stats.BuildWordReport(counter.Tally)
	if err := emitReport(os.Stdout, report, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "progress word-count: files_seen=%d files_counted=%d elapsed=%s\n",
		len(files), counter.Tally.Files, time.Since(start).Round(time.Millisecond))
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.Verbose, "v", false, "Print per-file stats for large files and gendered variant diffs (to stderr with -json)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Same as -v")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Localization language whose string tables are counted (localized/<lang>/text)")
	fs.StringVar(&cfg.ControlExts, "control-exts", cfg.ControlExts, "Comma-separated structural document extensions a string table must belong to")
	fs.StringVar(&cfg.RulesPath, "rules", "", "TOML file with blacklist patterns and gender markers (defaults to the built-in rules)")
	fs.IntVar(&cfg.GenderDiffMin, "gender-diff-min", cfg.GenderDiffMin, "Smallest gendered variant diff printed in verbose mode")
	fs.IntVar(&cfg.VerboseMinWords, "verbose-min-words", cfg.VerboseMinWords, "Files with more words than this get per-file stats in verbose mode")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the report as JSON instead of text")
	fs.StringVar(&cfg.OutPath, "out", "", "Also write the JSON report to this path")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print JSON output")
	fs.BoolVar(&cfg.Schema, "schema", false, "Print the JSON Schema of the report and exit")
	fs.StringVar(&cfg.ReviewModel, "review-model", "", "OpenAI model that reviews each printed variant diff (requires -v)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] <path>...\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nSentence length buckets are labelled with inclusive word counts:")
		fmt.Fprintln(fs.Output(), "  1 to 5, 6 to 10, 11 to 20, 21 to 1000 (a 5-word sentence is in \"1 to 5\").")
		fmt.Fprintln(fs.Output(), "  Earlier releases printed the same ranges as 0 to 4, 5 to 9, 10 to 19, 20 to 999.")
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/word-count -v StreamingAssets/data/localized/en/text")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	for _, p := range fs.Args() {
		cfg.Paths = append(cfg.Paths, filepath.Clean(p))
	}
	if cfg.OutPath != "" {
		cfg.OutPath = filepath.Clean(cfg.OutPath)
	}
	if cfg.RulesPath != "" {
		cfg.RulesPath = filepath.Clean(cfg.RulesPath)
	}
	return cfg, nil
}

func newCounter(cfg Config, diag io.Writer, reviewer stats.VariantReviewer) (*stats.WordCounter, error) {
	rules, err := stats.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	splitter, err := stats.NewPunktSplitter()
	if err != nil {
		return nil, err
	}
	return stats.NewWordCounter(stats.WordCounterOptions{
		Lang:            cfg.Lang,
		ControlExts:     cfg.controlExts(),
		Rules:           rules,
		Splitter:        splitter,
		GenderDiffMin:   cfg.GenderDiffMin,
		Verbose:         cfg.Verbose,
		VerboseMinWords: cfg.VerboseMinWords,
		Diag:            diag,
		Reviewer:        reviewer,
	})
}

// diagWriter keeps stdout parseable when the report is JSON.
func diagWriter(cfg Config, stdout, stderr io.Writer) io.Writer {
	if cfg.JSON {
		return stderr
	}
	return stdout
}

func emitReport(w io.Writer, report stats.WordReport, cfg Config) error {
	if cfg.OutPath != "" {
		if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, report, cfg.Pretty); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if !cfg.JSON {
		return report.WriteText(w)
	}
	enc := json.NewEncoder(w)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
