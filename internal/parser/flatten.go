// Package parser turns raw ADOxml export documents into typed models.
// It handles generic XML decoding, attribute flattening and the defensive
// scalar extraction the export format requires.
package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE  = regexp.MustCompile(`\s+`)
	parentheticRE = regexp.MustCompile(`\(.*\)`)
)

// SanitizeAttrName normalizes a raw attribute name into a lookup key:
// whitespace and parenthetical suffixes are stripped and the remainder is
// lowercased. Exported names embed a display phrase plus a parenthetical
// machine hint, e.g. "Process Background Color (Process Background Color
// Hex Color)". Idempotent.
func SanitizeAttrName(s string) string {
	s = parentheticRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// FlattenAttributes turns a node's ATTRIBUTE container, which may be a
// single element, a repeated element or absent, into a map keyed by
// sanitized attribute name. Name collisions after sanitization are resolved
// last-wins. An absent container yields an empty map, never an error.
func FlattenAttributes(n Node) map[string]Node {
	flat := make(map[string]Node)
	for _, attr := range n.Children("ATTRIBUTE") {
		raw, _ := attr[AttrPrefix+"name"].(string)
		value := Node{}
		for k, v := range attr {
			if k == AttrPrefix+"name" {
				continue
			}
			value[k] = v
		}
		flat[SanitizeAttrName(raw)] = value
	}
	return flat
}
