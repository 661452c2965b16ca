package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theimaginaryfoundation/numenera-stats/stats"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("tide-count", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{"data/conversations"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0] != filepath.Clean("data/conversations") {
		t.Fatalf("Paths=%v", cfg.Paths)
	}
	if cfg.Lang != "en" || cfg.FocusColor != "Indigo" || cfg.FocusMagnitudes != "Moderate,Huge" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Verbose || cfg.JSON {
		t.Fatalf("Verbose=%v JSON=%v", cfg.Verbose, cfg.JSON)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("tide-count", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-v",
		"-lang", "de",
		"-focus-color", "Gold",
		"-focus-magnitudes", "Tiny",
		"-json",
		"-pretty",
		"-out", "out/report.json",
		"a.conversation", "b",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !cfg.Verbose || !cfg.JSON || !cfg.Pretty {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Lang != "de" || cfg.FocusColor != "Gold" || cfg.FocusMagnitudes != "Tiny" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.OutPath != filepath.Clean("out/report.json") {
		t.Fatalf("OutPath=%q", cfg.OutPath)
	}
	if len(cfg.Paths) != 2 {
		t.Fatalf("Paths=%v", cfg.Paths)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := defaultConfig()
	base.Paths = []string{"x"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "no paths", mutate: func(c *Config) { c.Paths = nil }, wantErr: true},
		{name: "schema needs no paths", mutate: func(c *Config) { c.Paths = nil; c.Schema = true }},
		{name: "bad color", mutate: func(c *Config) { c.FocusColor = "Green" }, wantErr: true},
		{name: "bad magnitude", mutate: func(c *Config) { c.FocusMagnitudes = "Moderate,Massive" }, wantErr: true},
		{name: "empty magnitudes verbose", mutate: func(c *Config) { c.FocusMagnitudes = ""; c.Verbose = true }, wantErr: true},
		{name: "empty lang", mutate: func(c *Config) { c.Lang = "" }, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate()=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

const testConversation = `<?xml version="1.0" encoding="utf-8"?>
<ConversationData><Nodes>
<FlowChartNode><NodeID>7</NodeID><OnEnterScripts>
<ScriptCall><Data><FullName>Void RaisePlayerTide(TideColor, TideStrength)</FullName><Parameters><string>Indigo</string><string>Huge</string></Parameters></Data></ScriptCall>
<ScriptCall><Data><FullName>Void RaisePlayerTide(TideColor, TideStrength)</FullName><Parameters><string>Blue</string><string>Tiny</string></Parameters></Data></ScriptCall>
</OnEnterScripts></FlowChartNode>
</Nodes></ConversationData>
`

const testStringTable = `<?xml version="1.0" encoding="utf-8"?>
<StringTableFile><Name>x</Name><Entries>
<Entry><ID>7</ID><DefaultText>Justice is not negotiable.</DefaultText><FemaleText /></Entry>
</Entries></StringTableFile>
`

func TestDiagWriter(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	cfg := defaultConfig()
	if w := diagWriter(cfg, &out, &errOut); w != &out {
		t.Fatalf("text mode diagnostics not on stdout")
	}
	cfg.JSON = true
	if w := diagWriter(cfg, &out, &errOut); w != &errOut {
		t.Fatalf("json mode diagnostics not on stderr")
	}
}

func writeTestData(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "data")
	files := map[string]string{
		filepath.Join(root, "conversations", "x.conversation"):                           testConversation,
		filepath.Join(root, "localized", "en", "text", "conversations", "x.stringtable"): testStringTable,
	}
	for p, content := range files {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestRunAndEmitReport(t *testing.T) {
	t.Parallel()

	root := writeTestData(t)
	cfg := defaultConfig()
	cfg.Verbose = true
	cfg.JSON = true
	cfg.OutPath = filepath.Join(t.TempDir(), "report.json")

	files, err := stats.CollectInputs([]string{root}, stats.ConversationExt, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}

	var out, errOut bytes.Buffer
	counter, err := newCounter(cfg, diagWriter(cfg, &out, &errOut))
	if err != nil {
		t.Fatalf("newCounter: %v", err)
	}
	if err := counter.Run(context.Background(), files); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(errOut.String(), "Justice is not negotiable.") {
		t.Fatalf("stderr=%q", errOut.String())
	}

	if err := emitReport(&out, stats.BuildTideReport(counter.Tally), cfg); err != nil {
		t.Fatalf("emitReport: %v", err)
	}

	var got stats.TideReport
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal stdout: %v", err)
	}
	if got.Files != 1 || got.MultiChanges != 1 || len(got.Colors) != 2 {
		t.Fatalf("report=%+v", got)
	}

	written, err := os.ReadFile(cfg.OutPath)
	if err != nil {
		t.Fatalf("read -out: %v", err)
	}
	var fromFile stats.TideReport
	if err := json.Unmarshal(written, &fromFile); err != nil {
		t.Fatalf("unmarshal -out: %v", err)
	}
	if fromFile.Files != got.Files || fromFile.MultiChanges != got.MultiChanges {
		t.Fatalf("file report=%+v, stdout report=%+v", fromFile, got)
	}
}
