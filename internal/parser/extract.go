// Package parser turns raw ADOxml export documents into typed models.
// It handles generic XML decoding, attribute flattening and the defensive
// scalar extraction the export format requires.
package parser

import (
	"regexp"
	"strconv"

	"github.com/femviewer/core/internal/models"
)

// Every extractor in this file is total: missing or malformed input
// resolves to a documented default instead of an error, because exports
// omit attributes inconsistently across tool versions and failing hard
// would make legitimately viewable models unviewable.

var (
	floatRE    = regexp.MustCompile(`[+-]?([0-9]*[.])?[0-9]+`)
	hexColorRE = regexp.MustCompile(`val:"(\$?[a-zA-Z0-9]+)"`)
)

// StrProperty reads an XML attribute directly off a node. "" when absent.
func StrProperty(n Node, attr string) string {
	if n == nil {
		return ""
	}
	s, _ := n[AttrPrefix+attr].(string)
	return s
}

// NumProperty reads an XML attribute as a number. 0 when absent or not
// numeric.
func NumProperty(n Node, attr string) float64 {
	f, err := strconv.ParseFloat(StrProperty(n, attr), 64)
	if err != nil {
		return 0
	}
	return f
}

// textPayload returns the character data of the flattened attribute called
// name.
func textPayload(attrs map[string]Node, name string) (string, bool) {
	attr, ok := attrs[name]
	if !ok {
		return "", false
	}
	s, ok := attr[textKey].(string)
	return s, ok
}

// BoolAttr is true only when the attribute's text payload is the literal
// "Yes". "No", other casings and absence are all false.
func BoolAttr(attrs map[string]Node, name string) bool {
	s, ok := textPayload(attrs, name)
	return ok && s == "Yes"
}

// StrAttr returns the attribute's text payload, or "".
func StrAttr(attrs map[string]Node, name string) string {
	s, _ := textPayload(attrs, name)
	return s
}

// NumAttr parses the attribute's text payload as a number. An absent
// attribute falls back to the per-attribute default table, then to 0.
func NumAttr(attrs map[string]Node, name string) float64 {
	s, ok := textPayload(attrs, name)
	if !ok {
		return models.InstanceDefaults[name]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// findFloats extracts every decimal token from s in left-to-right order.
func findFloats(s string) []float64 {
	matches := floatRE.FindAllString(s, -1)
	floats := make([]float64, 0, len(matches))
	for _, m := range matches {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		floats = append(floats, f)
	}
	return floats
}

// ParseInstancePosition extracts a position from a free-text spec such as
// "NODE x:1.5cm y:3cm w:4cm h:2cm index:5", mapping the first five numeric
// tokens positionally. A string without numeric tokens yields nil: the
// position as a whole is absent, not zero.
func ParseInstancePosition(s string) *models.Position {
	floats := findFloats(s)
	if len(floats) == 0 {
		return nil
	}
	pos := &models.Position{}
	fields := []*float64{&pos.X, &pos.Y, &pos.Width, &pos.Height, &pos.Index}
	for i, f := range floats {
		if i >= len(fields) {
			break
		}
		*fields[i] = f
	}
	return pos
}

// ParseWorldArea extracts a model's drawable rectangle with the same
// numeric-token strategy as ParseInstancePosition, mapping the first four
// tokens.
func ParseWorldArea(s string) *models.WorldArea {
	floats := findFloats(s)
	if len(floats) == 0 {
		return nil
	}
	area := &models.WorldArea{}
	fields := []*float64{&area.Width, &area.Height, &area.MinWidth, &area.MinHeight}
	for i, f := range floats {
		if i >= len(fields) {
			break
		}
		*fields[i] = f
	}
	return area
}

// ExtractHexColor pulls the color token out of a val:"..." wrapper,
// including any leading "$". "" when the wrapper is absent or malformed.
func ExtractHexColor(s string) string {
	match := hexColorRE.FindStringSubmatch(s)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
