// Package parser turns raw ADOxml export documents into typed models.
// It handles generic XML decoding, attribute flattening and the defensive
// scalar extraction the export format requires.
package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNode(t *testing.T) {
	t.Run("attributes are prefixed", func(t *testing.T) {
		root, err := DecodeNode(strings.NewReader(`<MODEL id="mod.1" name="Logistics"/>`))

		require.NoError(t, err)
		model := root.Child("MODEL")
		require.NotNil(t, model)
		assert.Equal(t, "mod.1", model[AttrPrefix+"id"])
		assert.Equal(t, "Logistics", model[AttrPrefix+"name"])
	})

	t.Run("text payload lands under the text key", func(t *testing.T) {
		root, err := DecodeNode(strings.NewReader(`<ATTRIBUTE name="Author">anna</ATTRIBUTE>`))

		require.NoError(t, err)
		attr := root.Child("ATTRIBUTE")
		require.NotNil(t, attr)
		assert.Equal(t, "anna", attr.Text())
	})

	t.Run("repeated element names promote to a slice", func(t *testing.T) {
		root, err := DecodeNode(strings.NewReader(
			`<MODELS><MODEL id="a"/><MODEL id="b"/><MODEL id="c"/></MODELS>`))

		require.NoError(t, err)
		nodes := root.Child("MODELS").Children("MODEL")
		require.Len(t, nodes, 3)
		assert.Equal(t, "a", nodes[0][AttrPrefix+"id"])
		assert.Equal(t, "c", nodes[2][AttrPrefix+"id"])
	})

	t.Run("single element is still reachable via Children", func(t *testing.T) {
		root, err := DecodeNode(strings.NewReader(`<MODELS><MODEL id="only"/></MODELS>`))

		require.NoError(t, err)
		nodes := root.Child("MODELS").Children("MODEL")
		require.Len(t, nodes, 1)
		assert.Equal(t, "only", nodes[0][AttrPrefix+"id"])
	})

	t.Run("malformed xml returns an error", func(t *testing.T) {
		_, err := DecodeNode(strings.NewReader(`<MODEL><unclosed>`))
		assert.Error(t, err)
	})

	t.Run("accessors tolerate nil and absent nodes", func(t *testing.T) {
		var n Node
		assert.Nil(t, n.Child("anything"))
		assert.Nil(t, n.Children("anything"))
		assert.Equal(t, "", n.Text())

		root := Node{}
		assert.Nil(t, root.Child("missing"))
		assert.Nil(t, root.Child("missing").Child("deeper"))
	})
}
