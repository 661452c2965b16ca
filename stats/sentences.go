package stats

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter breaks a text into sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

type punktSplitter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter returns a splitter backed by the pre-trained English Punkt model.
func NewPunktSplitter() (SentenceSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("NewPunktSplitter: %w", err)
	}
	return punktSplitter{tok: tok}, nil
}

func (p punktSplitter) Split(text string) []string {
	var out []string
	for _, s := range p.tok.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
