package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theimaginaryfoundation/numenera-stats/stats/xmltree"
)

var ErrEntryNotFound = errors.New("string table entry not found")

// StringTableEntry is one localized line. FemaleText is the variant shown to a female
// player character and is usually empty.
type StringTableEntry struct {
	ID          string
	DefaultText string
	FemaleText  string
}

// StringTable is the decoded content of a .stringtable file.
type StringTable struct {
	Name    string
	Entries []StringTableEntry

	byID map[string]int
}

// LoadStringTable parses the .stringtable file at path.
func LoadStringTable(path string) (*StringTable, error) {
	root, err := xmltree.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadStringTable: %w", err)
	}
	return DecodeStringTable(root), nil
}

// DecodeStringTable reads every Entry element below root.
func DecodeStringTable(root *xmltree.Node) *StringTable {
	st := &StringTable{
		Name: strings.TrimSpace(root.ChildText("Name")),
		byID: make(map[string]int),
	}
	for _, e := range root.Descendants("Entry") {
		entry := StringTableEntry{
			ID:          strings.TrimSpace(e.ChildText("ID")),
			DefaultText: e.ChildText("DefaultText"),
			FemaleText:  e.ChildText("FemaleText"),
		}
		if _, dup := st.byID[entry.ID]; !dup {
			st.byID[entry.ID] = len(st.Entries)
		}
		st.Entries = append(st.Entries, entry)
	}
	return st
}

// DefaultText returns the default text of the first entry with the given ID.
func (st *StringTable) DefaultText(id string) (string, error) {
	i, ok := st.byID[strings.TrimSpace(id)]
	if !ok {
		return "", fmt.Errorf("%w: id=%q in %q", ErrEntryNotFound, id, st.Name)
	}
	return st.Entries[i].DefaultText, nil
}
