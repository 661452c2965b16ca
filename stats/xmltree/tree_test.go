package xmltree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = "\ufeff" + `<?xml version="1.0" encoding="utf-8"?>
<ConversationData xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Nodes>
    <FlowChartNode xsi:type="PlayerResponseNode">
      <NodeID>3</NodeID>
      <OnEnterScripts>
        <ScriptCall><Data><FullName>Void A()</FullName></Data></ScriptCall>
        <ScriptCall><Data><FullName>Void B()</FullName></Data></ScriptCall>
      </OnEnterScripts>
    </FlowChartNode>
    <FlowChartNode>
      <NodeID>4</NodeID>
      <Empty />
      <Escaped>a &amp; b</Escaped>
    </FlowChartNode>
  </Nodes>
</ConversationData>`

func TestParse_BuildsTree(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name != "ConversationData" {
		t.Fatalf("root.Name=%q", root.Name)
	}

	nodes := root.Path("Nodes", "FlowChartNode")
	if len(nodes) != 2 {
		t.Fatalf("len(nodes)=%d, want 2", len(nodes))
	}
	if got := nodes[0].Attrs["type"]; got != "PlayerResponseNode" {
		t.Fatalf("type attr=%q", got)
	}
	if got := nodes[0].ChildText("NodeID"); got != "3" {
		t.Fatalf("NodeID=%q, want 3", got)
	}
	if got := nodes[1].ChildText("Escaped"); got != "a & b" {
		t.Fatalf("Escaped=%q", got)
	}
	if got := nodes[1].ChildText("Empty"); got != "" {
		t.Fatalf("Empty=%q, want empty", got)
	}
	if got := nodes[1].ChildText("Missing"); got != "" {
		t.Fatalf("Missing=%q, want empty", got)
	}
}

func TestDescendants_DocumentOrderAndParents(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	names := root.Descendants("FullName")
	if len(names) != 2 {
		t.Fatalf("len(FullName)=%d, want 2", len(names))
	}
	if names[0].Text != "Void A()" || names[1].Text != "Void B()" {
		t.Fatalf("order=%q,%q", names[0].Text, names[1].Text)
	}

	scripts := root.Descendants("OnEnterScripts")
	if len(scripts) != 1 {
		t.Fatalf("len(OnEnterScripts)=%d", len(scripts))
	}
	if got := scripts[0].Parent.ChildText("NodeID"); got != "3" {
		t.Fatalf("parent NodeID=%q, want 3", got)
	}
	if got := len(scripts[0].Path("ScriptCall", "Data", "FullName")); got != 2 {
		t.Fatalf("Path len=%d, want 2", got)
	}
	if got := scripts[0].Path("ScriptCall", "Nope"); got != nil {
		t.Fatalf("Path to missing child=%v, want nil", got)
	}
}

func TestChildrenNamed_DirectChildrenOnly(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	nodes := root.Child("Nodes")
	if got := len(nodes.ChildrenNamed("FlowChartNode")); got != 2 {
		t.Fatalf("len(FlowChartNode)=%d, want 2", got)
	}
	if got := root.ChildrenNamed("FlowChartNode"); got != nil {
		t.Fatalf("grandchildren returned: %v", got)
	}
	calls := nodes.Children[0].Child("OnEnterScripts").ChildrenNamed("ScriptCall")
	if len(calls) != 2 || calls[1].Path("Data", "FullName")[0].Text != "Void B()" {
		t.Fatalf("ScriptCall children=%d", len(calls))
	}
	var nilNode *Node
	if got := nilNode.ChildrenNamed("x"); got != nil {
		t.Fatalf("nil node children=%v", got)
	}
}

func TestWalk_SkipsChildren(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var seen int
	root.Walk(func(n *Node) bool {
		seen++
		return n.Name != "Nodes"
	})
	if seen != 2 {
		t.Fatalf("seen=%d, want 2 (root and Nodes)", seen)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Parse(strings.NewReader("<a><b></a>")); err == nil {
		t.Fatalf("expected error for mismatched tags")
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(p, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root, err := ParseFile(p)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if root.Name != "ConversationData" {
		t.Fatalf("root.Name=%q", root.Name)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
