package main

import (
	"errors"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats"
)

type Config struct {
	Paths           []string
	Lang            string
	ControlExts     string
	RulesPath       string
	Verbose         bool
	GenderDiffMin   int
	VerboseMinWords int
	JSON            bool
	OutPath         string
	Pretty          bool
	Schema          bool
	ReviewModel     string
	APIKey          string
}

func (c Config) Validate() error {
	if c.Schema {
		return nil
	}
	if len(c.Paths) == 0 {
		return errors.New("missing input paths (pass .stringtable files or directories)")
	}
	if c.Lang == "" {
		return errors.New("missing -lang")
	}
	if len(c.controlExts()) == 0 {
		return errors.New("missing -control-exts")
	}
	if c.GenderDiffMin < 1 {
		return errors.New("gender diff min must be >= 1")
	}
	if c.VerboseMinWords < 0 {
		return errors.New("verbose min words must be >= 0")
	}
	if c.ReviewModel != "" && !c.Verbose {
		return errors.New("-review-model requires -v")
	}
	return nil
}

func (c Config) controlExts() []string {
	var out []string
	for _, ext := range strings.Split(c.ControlExts, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func defaultConfig() Config {
	return Config{
		Lang:            stats.DefaultLang,
		ControlExts:     strings.Join(stats.DefaultControlExts, ","),
		GenderDiffMin:   3,
		VerboseMinWords: 5000,
	}
}
