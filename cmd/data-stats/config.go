package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats"
)

var allStages = []string{"tides", "words"}

type Config struct {
	DataRoot string
	Lang     string

	RulesPath string
	Verbose   bool

	FromStage string
	OnlyStage string

	OutDir string
	Pretty bool
}

func (c Config) Validate() error {
	if c.DataRoot == "" {
		return errors.New("missing -data-root")
	}
	if c.Lang == "" {
		return errors.New("missing -lang")
	}
	if c.OnlyStage != "" && c.FromStage != "" {
		return errors.New("use only one of -only-stage or -from-stage")
	}
	for _, s := range []string{c.OnlyStage, c.FromStage} {
		if s == "" {
			continue
		}
		if !slices.Contains(allStages, strings.ToLower(strings.TrimSpace(s))) {
			return fmt.Errorf("unknown stage %q (want %s)", s, strings.Join(allStages, "|"))
		}
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Lang: stats.DefaultLang,
	}
}
