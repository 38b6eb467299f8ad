// Package parser turns raw ADOxml export documents into typed models.
// It handles generic XML decoding, attribute flattening and the defensive
// scalar extraction the export format requires.
package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// AttrPrefix marks XML attributes in decoded nodes so they never collide
// with child elements of the same name.
const AttrPrefix = "@_"

// textKey holds the character data of an element.
const textKey = "#text"

// Node is a generic decoded XML element. Values are string (attribute or
// nothing-but-text leaf payloads are still kept on the element under
// textKey), Node for a single child element, or []Node when an element name
// repeats.
type Node map[string]any

// DecodeNode reads an XML document into its generic node form. The export
// schema keys everything off attribute values rather than element
// structure, so a fixed struct mapping cannot express it.
func DecodeNode(r io.Reader) (Node, error) {
	dec := xml.NewDecoder(r)
	root := Node{}
	stack := []Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child := Node{}
			for _, a := range t.Attr {
				child[AttrPrefix+a.Name.Local] = a.Value
			}
			appendChild(stack[len(stack)-1], t.Name.Local, child)
			stack = append(stack, child)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			cur := stack[len(stack)-1]
			if prev, ok := cur[textKey].(string); ok {
				cur[textKey] = prev + text
			} else {
				cur[textKey] = text
			}
		}
	}

	return root, nil
}

// appendChild adds child under name, promoting to a slice when the element
// name repeats.
func appendChild(parent Node, name string, child Node) {
	switch existing := parent[name].(type) {
	case nil:
		parent[name] = child
	case Node:
		parent[name] = []Node{existing, child}
	case []Node:
		parent[name] = append(existing, child)
	}
}

// Child returns the single child element called name, or the first one when
// the name repeats. Nil when absent.
func (n Node) Child(name string) Node {
	if n == nil {
		return nil
	}
	switch v := n[name].(type) {
	case Node:
		return v
	case []Node:
		if len(v) > 0 {
			return v[0]
		}
	}
	return nil
}

// Children normalizes the singular-vs-array ambiguity of the export: it
// returns all child elements called name, which may be zero, one or many.
func (n Node) Children(name string) []Node {
	if n == nil {
		return nil
	}
	switch v := n[name].(type) {
	case Node:
		return []Node{v}
	case []Node:
		return v
	}
	return nil
}

// Text returns the element's character data, or "".
func (n Node) Text() string {
	if n == nil {
		return ""
	}
	s, _ := n[textKey].(string)
	return s
}
