package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

type tideCall struct {
	color, magnitude string
}

type dialogueNode struct {
	id      int
	calls   []tideCall
	others  []string
	noEnter bool
}

// conversationXML renders a minimal .conversation document.
func conversationXML(nodes ...dialogueNode) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<ConversationData xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><Nodes>` + "\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, `<FlowChartNode xsi:type="PlayerResponseNode"><NodeID>%d</NodeID>`, n.id)
		if !n.noEnter {
			b.WriteString("<OnEnterScripts>")
			for _, o := range n.others {
				fmt.Fprintf(&b, "<ScriptCall><Data><FullName>%s</FullName><Parameters><string>x</string></Parameters></Data></ScriptCall>", o)
			}
			for _, c := range n.calls {
				fmt.Fprintf(&b, "<ScriptCall><Data><FullName>Void RaisePlayerTide(TideColor, TideStrength)</FullName>"+
					"<Parameters><string>%s</string><string>%s</string></Parameters></Data></ScriptCall>", c.color, c.magnitude)
			}
			b.WriteString("</OnEnterScripts>")
		}
		b.WriteString("</FlowChartNode>\n")
	}
	b.WriteString("</Nodes></ConversationData>\n")
	return b.String()
}

type textEntry struct {
	id           int
	def, female  string
	noFemaleElem bool
}

// stringTableXML renders a minimal .stringtable document.
func stringTableXML(entries ...textEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString("<StringTableFile><Name>test</Name><Entries>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "<Entry><ID>%d</ID><DefaultText>%s</DefaultText>", e.id, e.def)
		if !e.noFemaleElem {
			fmt.Fprintf(&b, "<FemaleText>%s</FemaleText>", e.female)
		}
		b.WriteString("</Entry>\n")
	}
	b.WriteString("</Entries></StringTableFile>\n")
	return b.String()
}

// punctSplitter ends a sentence at '.', '!' or '?' followed by a space or the end of the text.
type punctSplitter struct{}

func (punctSplitter) Split(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !strings.ContainsRune(".!?", rune(text[i])) {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func mustDefaultRules(t *testing.T) *CompiledRules {
	t.Helper()
	r, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules: %v", err)
	}
	return r
}
