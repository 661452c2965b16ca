package stats

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed default_rules.toml
var defaultRulesTOML []byte

// Rules is the configuration data of the word counter.
type Rules struct {
	Blacklist     []string `toml:"blacklist"`
	GenderMarkers []string `toml:"gender_markers"`
}

// CompiledRules is Rules ready for matching.
type CompiledRules struct {
	blacklist []*regexp.Regexp
	markers   map[string]struct{}
}

// DefaultRules returns the embedded rule set.
func DefaultRules() (*CompiledRules, error) {
	r, err := ParseRules(defaultRulesTOML)
	if err != nil {
		return nil, fmt.Errorf("DefaultRules: %w", err)
	}
	return r.Compile()
}

// LoadRules reads a TOML rules file. An empty path selects the embedded defaults.
func LoadRules(path string) (*CompiledRules, error) {
	if path == "" {
		return DefaultRules()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("LoadRules: rules file '%s' does not exist", path)
		}
		return nil, fmt.Errorf("LoadRules: read file: %w", err)
	}
	r, err := ParseRules(b)
	if err != nil {
		return nil, fmt.Errorf("LoadRules %s: %w", path, err)
	}
	return r.Compile()
}

func ParseRules(data []byte) (Rules, error) {
	var r Rules
	if err := toml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return r, nil
}

func (r Rules) Compile() (*CompiledRules, error) {
	c := &CompiledRules{markers: make(map[string]struct{}, len(r.GenderMarkers))}
	for _, p := range r.Blacklist {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("Compile: blacklist pattern %q: %w", p, err)
		}
		c.blacklist = append(c.blacklist, re)
	}
	lower := cases.Lower(language.English)
	for _, m := range r.GenderMarkers {
		m = strings.TrimSpace(lower.String(m))
		if m != "" {
			c.markers[m] = struct{}{}
		}
	}
	return c, nil
}

// Ignored reports whether text matches a blacklist pattern.
func (c *CompiledRules) Ignored(text string) bool {
	for _, re := range c.blacklist {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// VariantDiff returns the sorted symmetric difference between the word sets of a default
// text and its female variant. Words are lowercased and stripped of surrounding
// punctuation; gender markers are dropped from both sides.
func (c *CompiledRules) VariantDiff(defaultText, femaleText string) []string {
	lower := cases.Lower(language.English)
	a := c.variantWords(lower, defaultText)
	b := c.variantWords(lower, femaleText)

	var out []string
	for w := range a {
		if _, ok := b[w]; !ok {
			out = append(out, w)
		}
	}
	for w := range b {
		if _, ok := a[w]; !ok {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func (c *CompiledRules) variantWords(lower cases.Caser, text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(lower.String(text)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w == "" {
			continue
		}
		if _, ok := c.markers[w]; ok {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
