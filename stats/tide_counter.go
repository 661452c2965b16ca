package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
	"github.com/theimaginaryfoundation/numenera-stats/stats/xmltree"
)

// TideCounterOptions configures a TideCounter.
type TideCounterOptions struct {
	// Lang selects the localized/<Lang>/text string tables (defaults to "en").
	Lang string

	// Verbose prints every change of FocusColor with one of FocusMagnitudes, together with
	// the line of dialogue that triggers it.
	Verbose         bool
	FocusColor      Color
	FocusMagnitudes []Magnitude

	// Diag receives verbose diagnostics. Required when Verbose is set.
	Diag io.Writer
}

// TideCounter runs the tide pipeline over conversation files.
type TideCounter struct {
	opts  TideCounterOptions
	Tally *TideTally
}

func NewTideCounter(opts TideCounterOptions) (*TideCounter, error) {
	if opts.Verbose && opts.Diag == nil {
		return nil, errors.New("NewTideCounter: Diag is nil in verbose mode")
	}
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	return &TideCounter{opts: opts, Tally: NewTideTally()}, nil
}

// Run counts every file in order.
func (c *TideCounter) Run(ctx context.Context, files []string) error {
	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := c.CountFile(f); err != nil {
			return err
		}
	}
	return nil
}

// CountFile counts one conversation. It returns false, without error, when the
// conversation has no string table.
func (c *TideCounter) CountFile(path string) (bool, error) {
	stPath := StringTablePathFor(path, c.opts.Lang)
	if stPath == "" || !fileutils.FileExists(stPath) {
		return false, nil
	}

	root, err := xmltree.ParseFile(path)
	if err != nil {
		return false, fmt.Errorf("CountFile: %w", err)
	}
	st, err := LoadStringTable(stPath)
	if err != nil {
		return false, fmt.Errorf("CountFile: %w", err)
	}

	scripts, err := ExtractTideScripts(root)
	if err != nil {
		return false, fmt.Errorf("CountFile %s: %w", path, err)
	}

	c.Tally.Files++
	for _, ts := range scripts {
		if err := c.Tally.Add(ts); err != nil {
			return false, fmt.Errorf("CountFile %s: %w", path, err)
		}
		if !c.opts.Verbose {
			continue
		}
		for _, ch := range ts.Changes {
			if ch.Color != c.opts.FocusColor || !slices.Contains(c.opts.FocusMagnitudes, ch.Magnitude) {
				continue
			}
			text, err := st.DefaultText(ts.NodeID)
			if err != nil {
				return false, fmt.Errorf("CountFile %s: %w", path, err)
			}
			fmt.Fprintf(c.opts.Diag, "%s: %s -> %s\n", path, ch.Color, ch.Magnitude)
			fmt.Fprintf(c.opts.Diag, "%s [nodeid=%s]\n\n", text, ts.NodeID)
		}
	}
	return true, nil
}
