package stats

import "strings"

// GenderDiff records a line whose female variant differs from the default text in
// more than the expected gendered words.
type GenderDiff struct {
	EntryID     string   `json:"entry_id"`
	DefaultText string   `json:"default_text"`
	FemaleText  string   `json:"female_text"`
	Words       []string `json:"words"`
}

// FileWordStats is what one string table contributes to the word tally.
type FileWordStats struct {
	Path string

	Words        int
	Nodes        int
	EmptyNodes   int
	IgnoredNodes int
	FemaleWords  int
	FemaleNodes  int

	// Sentences is the file's set of distinct sentences.
	Sentences map[string]struct{}

	Diffs []GenderDiff
}

// UniqueWords counts the words of the file's distinct sentences.
func (f FileWordStats) UniqueWords() int {
	n := 0
	for s := range f.Sentences {
		n += len(strings.Fields(s))
	}
	return n
}

type ExtractOptions struct {
	Rules    *CompiledRules
	Splitter SentenceSplitter

	// GenderDiffMin is the smallest diff worth recording (a diff is never recorded when empty).
	GenderDiffMin int
}

// ExtractWords counts the words, nodes and sentences of one string table.
//
// A default text is either empty, ignored (blacklisted) or a real node; only real nodes
// contribute words and sentences. Female variants are counted on their own, and compared
// against the default text when the default is a real node.
func ExtractWords(st *StringTable, opts ExtractOptions) FileWordStats {
	fs := FileWordStats{Sentences: make(map[string]struct{})}

	for _, e := range st.Entries {
		def := e.DefaultText
		realNode := false

		switch {
		case def == "":
			fs.EmptyNodes++
		case opts.Rules.Ignored(def):
			fs.IgnoredNodes++
		default:
			realNode = true
			fs.Nodes++
			fs.Words += len(strings.Fields(def))
			for _, s := range opts.Splitter.Split(def) {
				fs.Sentences[s] = struct{}{}
			}
		}

		if e.FemaleText == "" {
			continue
		}
		fs.FemaleNodes++
		fs.FemaleWords += len(strings.Fields(e.FemaleText))

		if !realNode {
			continue
		}
		diff := opts.Rules.VariantDiff(def, e.FemaleText)
		if len(diff) > 0 && len(diff) >= opts.GenderDiffMin {
			fs.Diffs = append(fs.Diffs, GenderDiff{
				EntryID:     e.ID,
				DefaultText: def,
				FemaleText:  e.FemaleText,
				Words:       diff,
			})
		}
	}
	return fs
}

// sentenceBucketBounds are (lo, hi] word-count ranges for the sentence length histogram.
var sentenceBucketBounds = [][2]int{{0, 5}, {5, 10}, {10, 20}, {20, 1000}}

// SentenceBucket is one row of the sentence length histogram. MinWords and MaxWords are inclusive.
type SentenceBucket struct {
	MinWords  int `json:"min_words"`
	MaxWords  int `json:"max_words"`
	Sentences int `json:"sentences"`
	Words     int `json:"words"`
}

// WordTally accumulates FileWordStats across files.
type WordTally struct {
	Files         int
	FilesNonEmpty int

	Words        int
	Nodes        int
	EmptyNodes   int
	IgnoredNodes int
	FemaleWords  int
	FemaleNodes  int

	// UniqueWordsPerFile sums the words of each file's distinct sentences. Repeats inside
	// a file collapse; repeats across files still count.
	UniqueWordsPerFile int

	GenderDiffs int

	// Sentences is the set of distinct sentences over all files.
	Sentences map[string]struct{}
}

func NewWordTally() *WordTally {
	return &WordTally{Sentences: make(map[string]struct{})}
}

// Merge folds one file into the tally.
func (t *WordTally) Merge(f FileWordStats) {
	t.Files++
	if f.Words > 0 {
		t.FilesNonEmpty++
	}
	t.Words += f.Words
	t.Nodes += f.Nodes
	t.EmptyNodes += f.EmptyNodes
	t.IgnoredNodes += f.IgnoredNodes
	t.FemaleWords += f.FemaleWords
	t.FemaleNodes += f.FemaleNodes
	t.UniqueWordsPerFile += f.UniqueWords()
	t.GenderDiffs += len(f.Diffs)

	for s := range f.Sentences {
		t.Sentences[s] = struct{}{}
	}
}

// GlobalUniqueWords counts the words of all distinct sentences.
func (t *WordTally) GlobalUniqueWords() int {
	n := 0
	for s := range t.Sentences {
		n += len(strings.Fields(s))
	}
	return n
}

// SentenceBuckets histograms the distinct sentences by word count.
func (t *WordTally) SentenceBuckets() []SentenceBucket {
	out := make([]SentenceBucket, len(sentenceBucketBounds))
	for i, b := range sentenceBucketBounds {
		out[i] = SentenceBucket{MinWords: b[0] + 1, MaxWords: b[1]}
	}
	for s := range t.Sentences {
		n := len(strings.Fields(s))
		for i, b := range sentenceBucketBounds {
			if b[0] < n && n <= b[1] {
				out[i].Sentences++
				out[i].Words += n
				break
			}
		}
	}
	return out
}
