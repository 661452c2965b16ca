// Package stats scans the dialogue and localization files of Tides of Numenera and folds
// them into counters: Tide changes per color (tide.go, tide_counter.go) and words and
// sentences of the localized text (words.go, word_counter.go).
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats/xmltree"
)

// Color names one of the five Tides.
type Color string

const (
	Red    Color = "Red"
	Blue   Color = "Blue"
	Gold   Color = "Gold"
	Silver Color = "Silver"
	Indigo Color = "Indigo"
)

var knownColors = map[Color]struct{}{
	Red: {}, Blue: {}, Gold: {}, Silver: {}, Indigo: {},
}

// Magnitude is how far a single call raises a Tide.
type Magnitude string

const (
	Tiny     Magnitude = "Tiny"
	Small    Magnitude = "Small"
	Moderate Magnitude = "Moderate"
	Huge     Magnitude = "Huge"
)

var tideWeights = map[Magnitude]int{
	Tiny:     1,
	Small:    2,
	Moderate: 3,
	Huge:     5,
}

var (
	ErrUnknownMagnitude  = errors.New("unknown tide magnitude")
	ErrUnknownColor      = errors.New("unknown tide color")
	ErrMalformedTideCall = errors.New("malformed RaisePlayerTide call")
)

// raiseTidePrefix matches the FullName of the script function that raises a Tide,
// e.g. "Void RaisePlayerTide(TideColor, TideStrength)".
const raiseTidePrefix = "Void RaisePlayerTide"

// Weight maps a magnitude to its numeric weight. There is no fallback: an unknown
// magnitude means the data is not what we think it is.
func (m Magnitude) Weight() (int, error) {
	w, ok := tideWeights[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMagnitude, string(m))
	}
	return w, nil
}

// ParseMagnitudes parses a comma-separated list such as "Moderate,Huge".
func ParseMagnitudes(s string) ([]Magnitude, error) {
	var out []Magnitude
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := Magnitude(part)
		if _, err := m.Weight(); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ParseColor validates a color name.
func ParseColor(s string) (Color, error) {
	c := Color(strings.TrimSpace(s))
	if _, ok := knownColors[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// TideChange is one RaisePlayerTide call.
type TideChange struct {
	Color     Color     `json:"color"`
	Magnitude Magnitude `json:"magnitude"`
}

func (c TideChange) Validate() error {
	if _, ok := knownColors[c.Color]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, string(c.Color))
	}
	_, err := c.Magnitude.Weight()
	return err
}

// TideScript is one OnEnterScripts block and the tide changes it performs, in call order.
type TideScript struct {
	NodeID  string
	Changes []TideChange
}

// ExtractTideScripts returns every OnEnterScripts block of a conversation document in
// document order. Blocks that call no RaisePlayerTide are returned with no changes.
func ExtractTideScripts(root *xmltree.Node) ([]TideScript, error) {
	var out []TideScript
	for _, script := range root.Descendants("OnEnterScripts") {
		ts := TideScript{NodeID: strings.TrimSpace(script.Parent.ChildText("NodeID"))}

		for _, data := range script.Path("ScriptCall", "Data") {
			if !strings.HasPrefix(strings.TrimSpace(data.ChildText("FullName")), raiseTidePrefix) {
				continue
			}
			params := data.Path("Parameters", "string")
			if len(params) != 2 {
				return nil, fmt.Errorf("%w: node %s has %d parameters, want 2", ErrMalformedTideCall, ts.NodeID, len(params))
			}
			change := TideChange{
				Color:     Color(strings.TrimSpace(params[0].Text)),
				Magnitude: Magnitude(strings.TrimSpace(params[1].Text)),
			}
			if err := change.Validate(); err != nil {
				return nil, fmt.Errorf("node %s: %w", ts.NodeID, err)
			}
			ts.Changes = append(ts.Changes, change)
		}
		out = append(out, ts)
	}
	return out, nil
}

// ColorSet is a sorted set of distinct colors.
type ColorSet []Color

// NewColorSet collapses duplicates and sorts.
func NewColorSet(colors ...Color) ColorSet {
	seen := make(map[Color]struct{}, len(colors))
	out := make(ColorSet, 0, len(colors))
	for _, c := range colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s ColorSet) key() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return strings.Join(parts, "+")
}

func (s ColorSet) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ColorSetCount is one row of the multi-change histogram.
type ColorSetCount struct {
	Colors ColorSet `json:"colors"`
	Count  int      `json:"count"`
}

// TideTally accumulates tide changes across files.
type TideTally struct {
	Files    int
	Count    map[Color]int
	Weighted map[Color]int

	order []Color
	multi map[string]*ColorSetCount
}

func NewTideTally() *TideTally {
	return &TideTally{
		Count:    make(map[Color]int),
		Weighted: make(map[Color]int),
		multi:    make(map[string]*ColorSetCount),
	}
}

// Add folds one script block into the tally. Every change bumps its color's count and
// weighted sum; a block with two or more changes also counts once under the set of
// distinct colors it touches. The block is validated before anything is counted.
func (t *TideTally) Add(ts TideScript) error {
	weights := make([]int, len(ts.Changes))
	for i, c := range ts.Changes {
		if err := c.Validate(); err != nil {
			return err
		}
		weights[i], _ = c.Magnitude.Weight()
	}

	for i, c := range ts.Changes {
		if _, ok := t.Count[c.Color]; !ok {
			t.order = append(t.order, c.Color)
		}
		t.Count[c.Color]++
		t.Weighted[c.Color] += weights[i]
	}

	if len(ts.Changes) > 1 {
		colors := make([]Color, len(ts.Changes))
		for i, c := range ts.Changes {
			colors[i] = c.Color
		}
		set := NewColorSet(colors...)
		k := set.key()
		row, ok := t.multi[k]
		if !ok {
			row = &ColorSetCount{Colors: set}
			t.multi[k] = row
		}
		row.Count++
	}
	return nil
}

// Colors returns the colors seen so far, in first-seen order.
func (t *TideTally) Colors() []Color {
	return append([]Color(nil), t.order...)
}

// MultiChanges is the number of script blocks that changed more than one tide.
func (t *TideTally) MultiChanges() int {
	n := 0
	for _, row := range t.multi {
		n += row.Count
	}
	return n
}

// Histogram returns the multi-change rows, highest count first, then by color set.
func (t *TideTally) Histogram() []ColorSetCount {
	out := make([]ColorSetCount, 0, len(t.multi))
	for _, row := range t.multi {
		out = append(out, ColorSetCount{Colors: append(ColorSet(nil), row.Colors...), Count: row.Count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Colors.key() < out[j].Colors.key()
	})
	return out
}
