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
		b, err := provider.DocumentSchema[stats.TideReport]()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, string(b))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := stats.CollectInputs(cfg.Paths, stats.ConversationExt, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	counter, err := newCounter(cfg, diagWriter(cfg, os.Stdout, os.Stderr))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	start := time.Now()
	if err := counter.Run(ctx, files); err != nil {
		fmt.Fprintf(os.Stderr, "tide count failed: %s\n", err.Error())
		os.Exit(1)
	}

	report := stats.BuildTideReport(counter.Tally)
	if err := emitReport(os.Stdout, report, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "progress tide-count: files_seen=%d files_counted=%d elapsed=%s\n",
		len(files), counter.Tally.Files, time.Since(start).Round(time.Millisecond))
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.Verbose, "v", false, "Print every focus-color change with the dialogue line that triggers it (to stderr with -json)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Same as -v")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Localization language used to find string tables (localized/<lang>/text)")
	fs.StringVar(&cfg.FocusColor, "focus-color", cfg.FocusColor, "Tide color reported in verbose mode")
	fs.StringVar(&cfg.FocusMagnitudes, "focus-magnitudes", cfg.FocusMagnitudes, "Comma-separated magnitudes reported in verbose mode")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the report as JSON instead of text")
	fs.StringVar(&cfg.OutPath, "out", "", "Also write the JSON report to this path")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print JSON output")
	fs.BoolVar(&cfg.Schema, "schema", false, "Print the JSON Schema of the report and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] <path>...\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/tide-count -v StreamingAssets/data/conversations")
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
	return cfg, nil
}

func newCounter(cfg Config, diag io.Writer) (*stats.TideCounter, error) {
	color, err := stats.ParseColor(cfg.FocusColor)
	if err != nil {
		return nil, err
	}
	mags, err := stats.ParseMagnitudes(cfg.FocusMagnitudes)
	if err != nil {
		return nil, err
	}
	return stats.NewTideCounter(stats.TideCounterOptions{
		Lang:            cfg.Lang,
		Verbose:         cfg.Verbose,
		FocusColor:      color,
		FocusMagnitudes: mags,
		Diag:            diag,
	})
}

// diagWriter keeps stdout parseable when the report is JSON.
func diagWriter(cfg Config, stdout, stderr io.Writer) io.Writer {
	if cfg.JSON {
		return stderr
	}
	return stdout
}

func emitReport(w io.Writer, report stats.TideReport, cfg Config) error {
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
