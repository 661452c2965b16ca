package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats/fileutils"
)

// WordCounterOptions configures a WordCounter.
type WordCounterOptions struct {
	// Lang selects localized/<Lang>/text (defaults to "en").
	Lang string

	// ControlExts are the structural documents a string table must have to be counted
	// (defaults to DefaultControlExts).
	ControlExts []string

	Rules    *CompiledRules
	Splitter SentenceSplitter

	// GenderDiffMin is the smallest variant diff surfaced in verbose mode.
	GenderDiffMin int

	Verbose bool

	// VerboseMinWords: files with more words than this get a per-file block in verbose mode.
	VerboseMinWords int

	// Diag receives verbose diagnostics. Required when Verbose is set.
	Diag io.Writer

	// Reviewer, when set, is asked about every surfaced variant diff (verbose mode only).
	Reviewer VariantReviewer
}

// WordCounter runs the word pipeline over string tables.
type WordCounter struct {
	opts  WordCounterOptions
	Tally *WordTally
}

func NewWordCounter(opts WordCounterOptions) (*WordCounter, error) {
	if opts.Rules == nil {
		return nil, errors.New("NewWordCounter: Rules is nil")
	}
	if opts.Splitter == nil {
		return nil, errors.New("NewWordCounter: Splitter is nil")
	}
	if opts.Verbose && opts.Diag == nil {
		return nil, errors.New("NewWordCounter: Diag is nil in verbose mode")
	}
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	if len(opts.ControlExts) == 0 {
		opts.ControlExts = DefaultControlExts
	}
	return &WordCounter{opts: opts, Tally: NewWordTally()}, nil
}

// Run counts every file in order.
func (c *WordCounter) Run(ctx context.Context, files []string) error {
	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := c.CountFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// CountFile counts one string table. It returns false, without error, when the table has
// no structural document next to it.
func (c *WordCounter) CountFile(ctx context.Context, path string) (bool, error) {
	if ControlPathFor(path, c.opts.Lang, c.opts.ControlExts) == "" {
		return false, nil
	}

	st, err := LoadStringTable(path)
	if err != nil {
		return false, err
	}

	fs := ExtractWords(st, ExtractOptions{
		Rules:         c.opts.Rules,
		Splitter:      c.opts.Splitter,
		GenderDiffMin: c.opts.GenderDiffMin,
	})
	fs.Path = path
	c.Tally.Merge(fs)

	if !c.opts.Verbose {
		return true, nil
	}

	w := c.opts.Diag
	if fs.Words > c.opts.VerboseMinWords {
		fmt.Fprintln(w, "Per file stats of ", path)
		fmt.Fprintln(w, "Word count in file: ", fs.Words)
		fmt.Fprintln(w, "These words are in these nodes: ", fs.Nodes)
		fmt.Fprintf(w, "Female words: %d in %d nodes\n", fs.FemaleWords, fs.FemaleNodes)
		fmt.Fprintln(w)
	}

	for _, d := range fs.Diffs {
		fmt.Fprintf(w, "%s [id=%s]: %d differing words: %s\n", path, d.EntryID, len(d.Words), strings.Join(d.Words, ", "))
		fmt.Fprintf(w, "  default: %s\n", fileutils.SanitizeNewlines(d.DefaultText))
		fmt.Fprintf(w, "  female:  %s\n", fileutils.SanitizeNewlines(d.FemaleText))
		if c.opts.Reviewer != nil {
			v, err := c.opts.Reviewer.ReviewVariant(ctx, d)
			switch {
			case err != nil && ctx.Err() != nil:
				return true, ctx.Err()
			case err != nil:
				fmt.Fprintf(w, "  review: failed: %s\n", err.Error())
			case v.Substantive:
				fmt.Fprintf(w, "  review: substantive (%s)\n", v.Reason)
			default:
				fmt.Fprintf(w, "  review: cosmetic (%s)\n", v.Reason)
			}
		}
		fmt.Fprintln(w)
	}
	return true, nil
}
