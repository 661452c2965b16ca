package main

import (
	"errors"

	"github.com/theimaginaryfoundation/numenera-stats/stats"
)

type Config struct {
	Paths           []string
	Lang            string
	Verbose         bool
	FocusColor      string
	FocusMagnitudes string
	JSON            bool
	OutPath         string
	Pretty          bool
	Schema          bool
}

func (c Config) Validate() error {
	if c.Schema {
		return nil
	}
	if len(c.Paths) == 0 {
		return errors.New("missing input paths (pass .conversation files or directories)")
	}
	if c.Lang == "" {
		return errors.New("missing -lang")
	}
	if _, err := stats.ParseColor(c.FocusColor); err != nil {
		return err
	}
	mags, err := stats.ParseMagnitudes(c.FocusMagnitudes)
	if err != nil {
		return err
	}
	if c.Verbose && len(mags) == 0 {
		return errors.New("-focus-magnitudes is empty")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Lang:            stats.DefaultLang,
		FocusColor:      string(stats.Indigo),
		FocusMagnitudes: "Moderate,Huge",
	}
}
