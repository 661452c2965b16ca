// Package xmltree parses XML documents into a small generic element tree and
// offers typed lookups over it (children by name, descendants by name, child paths).
//
// The game's data files are plain element trees with almost no attributes or mixed
// content, so a Node keeps only what the analyses need: local name, attributes,
// direct character data, children and a parent link.
package xmltree

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Node is one XML element.
type Node struct {
	// Name is the element's local name (namespace prefixes are dropped).
	Name string

	// Attrs maps attribute local names to values. Nil when the element has none.
	Attrs map[string]string

	// Text is the concatenated character data found directly inside the element.
	Text string

	Children []*Node
	Parent   *Node
}

// ParseFile opens and parses the XML document at path.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile: open: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("ParseFile %s: %w", path, err)
	}
	return root, nil
}

// Parse reads one XML document from r and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)

	var (
		root *Node
		cur  *Node
		text = map[*Node]*strings.Builder{}
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Parent: cur}
			if len(t.Attr) > 0 {
				n.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if cur == nil {
				if root != nil {
					return nil, errors.New("xmltree: more than one root element")
				}
				root = n
			} else {
				cur.Children = append(cur.Children, n)
			}
			cur = n
		case xml.EndElement:
			if b, ok := text[cur]; ok {
				cur.Text = b.String()
				delete(text, cur)
			}
			cur = cur.Parent
		case xml.CharData:
			if cur == nil {
				continue
			}
			b, ok := text[cur]
			if !ok {
				b = &strings.Builder{}
				text[cur] = b
			}
			b.Write(t)
		}
	}

	if root == nil {
		return nil, errors.New("xmltree: document has no root element")
	}
	return root, nil
}

// ChildrenNamed returns the direct children named name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildText returns the text of the first direct child named name, or "" when there is none.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// Path follows a chain of child names and returns every element reached,
// e.g. n.Path("ScriptCall", "Data") returns all Data elements of all ScriptCall children.
func (n *Node) Path(names ...string) []*Node {
	if n == nil {
		return nil
	}
	level := []*Node{n}
	for _, name := range names {
		var next []*Node
		for _, p := range level {
			next = append(next, p.ChildrenNamed(name)...)
		}
		if len(next) == 0 {
			return nil
		}
		level = next
	}
	return level
}

// Descendants returns every element below n (n itself excluded) named name, in document order.
func (n *Node) Descendants(name string) []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if d != n && d.Name == name {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Walk visits n and its subtree depth-first in document order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
