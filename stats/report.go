package stats

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ColorStat is one color's line in the tide report.
type ColorStat struct {
	Color    Color `json:"color"`
	Count    int   `json:"count"`
	Weighted int   `json:"weighted"`
}

// TideReport is the final projection of a TideTally.
type TideReport struct {
	Files        int             `json:"file_cnt"`
	Colors       []ColorStat     `json:"colors"`
	MultiChanges int             `json:"multi_changes"`
	Multi        []ColorSetCount `json:"multi_histogram"`
}

func BuildTideReport(t *TideTally) TideReport {
	r := TideReport{
		Files:        t.Files,
		Colors:       []ColorStat{},
		MultiChanges: t.MultiChanges(),
		Multi:        t.Histogram(),
	}
	for _, c := range t.Colors() {
		r.Colors = append(r.Colors, ColorStat{Color: c, Count: t.Count[c], Weighted: t.Weighted[c]})
	}
	return r
}

// WriteText prints the report in the tools' fixed text format.
func (r TideReport) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("Color appearances:\n")
	for _, c := range r.Colors {
		p.Fprintf(&b, "Color: %s, count: %d, weighted count: %d\n", c.Color, c.Count, c.Weighted)
	}
	p.Fprintf(&b, "Multi changes at once: %d\n\n", r.MultiChanges)
	for _, row := range r.Multi {
		p.Fprintf(&b, "%s: %d\n", row.Colors.String(), row.Count)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WordReport is the final projection of a WordTally.
type WordReport struct {
	Files         int `json:"file_cnt"`
	FilesNonEmpty int `json:"file_non_empty_cnt"`
	Words         int `json:"word_cnt"`
	Nodes         int `json:"node_cnt"`
	EmptyNodes    int `json:"node_empty_cnt"`
	IgnoredNodes  int `json:"node_ignored_cnt"`
	FemaleWords   int `json:"fem_word_cnt"`
	FemaleNodes   int `json:"fem_node_cnt"`

	UniqueWordsPerFile int `json:"words_unique_cnt"`

	GlobalUniqueWords     int              `json:"global_unique_word_cnt"`
	GlobalUniqueSentences int              `json:"global_unique_sentence_cnt"`
	SentenceBuckets       []SentenceBucket `json:"sentence_buckets"`

	GenderDiffs int `json:"gender_diff_cnt"`
}

func BuildWordReport(t *WordTally) WordReport {
	return WordReport{
		Files:                 t.Files,
		FilesNonEmpty:         t.FilesNonEmpty,
		Words:                 t.Words,
		Nodes:                 t.Nodes,
		EmptyNodes:            t.EmptyNodes,
		IgnoredNodes:          t.IgnoredNodes,
		FemaleWords:           t.FemaleWords,
		FemaleNodes:           t.FemaleNodes,
		UniqueWordsPerFile:    t.UniqueWordsPerFile,
		GlobalUniqueWords:     t.GlobalUniqueWords(),
		GlobalUniqueSentences: len(t.Sentences),
		SentenceBuckets:       t.SentenceBuckets(),
		GenderDiffs:           t.GenderDiffs,
	}
}

// WriteText prints the report in the tools' fixed text format.
func (r WordReport) WriteText(w io.Writer) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	rule := strings.Repeat("-", 30)
	b.WriteString(rule + " Results " + rule + "\n")
	p.Fprintf(&b, "Number of files: %d, non-empty: %d\n", r.Files, r.FilesNonEmpty)
	p.Fprintf(&b, "Word count in all files: %d\n", r.Words)
	p.Fprintf(&b, "These words are in %d nodes, with %d nodes being empty, %d ignored.\n", r.Nodes, r.EmptyNodes, r.IgnoredNodes)
	p.Fprintf(&b, "Female words: %d in %d nodes\n", r.FemaleWords, r.FemaleNodes)
	b.WriteString(strings.Repeat("-", 69) + "\n")
	p.Fprintf(&b, "Words from per-file unique sentences: %d\n", r.UniqueWordsPerFile)
	b.WriteString(strings.Repeat("-", 80) + "\n")
	p.Fprintf(&b, "%d words in %d globally unique sentences.\n", r.GlobalUniqueWords, r.GlobalUniqueSentences)
	for _, sb := range r.SentenceBuckets {
		p.Fprintf(&b, "Sentences with %d to %d words: %d with %d words\n", sb.MinWords, sb.MaxWords, sb.Sentences, sb.Words)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
