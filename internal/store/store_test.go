// Package store holds the parsed models of a viewing session together with
// the current selection and rendered-diagram artifacts.
package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/femviewer/core/internal/models"
)

func logisticsModel() models.Model {
	return models.Model{
		ID:   "mod.1",
		Name: "Logistics",
		Instances: []models.Instance{
			{ID: "inst.1", Class: models.ClassProcess, Name: "Ship Goods", Denomination: "Ship goods to customer"},
			{ID: "inst.2", Class: models.ClassAsset, Name: "Truck", Denomination: "Delivery truck"},
		},
	}
}

func TestAddModel(t *testing.T) {
	t.Run("appends in import order", func(t *testing.T) {
		s := New()
		s.AddModel(models.Model{ID: "a", Name: "A"})
		s.AddModel(models.Model{ID: "b", Name: "B"})

		tree := s.ModelTree()
		require.Len(t, tree, 2)
		assert.Equal(t, "a", tree[0].ID)
		assert.Equal(t, "b", tree[1].ID)
	})

	t.Run("does not deduplicate by id", func(t *testing.T) {
		s := New()
		s.AddModel(models.Model{ID: "dup", Name: "First"})
		s.AddModel(models.Model{ID: "dup", Name: "Second"})

		assert.Len(t, s.Models(), 2)

		m, ok := s.ModelByID("dup")
		require.True(t, ok)
		assert.Equal(t, "First", m.Name, "first entry wins on lookup")
	})

	t.Run("returned collection is a snapshot", func(t *testing.T) {
		s := New()
		s.AddModel(models.Model{ID: "a", Name: "A"})

		snapshot := s.Models()
		snapshot[0].Name = "mutated"

		fresh, ok := s.ModelByID("a")
		require.True(t, ok)
		assert.Equal(t, "A", fresh.Name)
	})
}

func TestSetCurrentModel(t *testing.T) {
	t.Run("selects by id", func(t *testing.T) {
		s := New()
		s.AddModel(logisticsModel())

		s.SetCurrentModel("mod.1")

		m, ok := s.CurrentModel()
		require.True(t, ok)
		assert.Equal(t, "Logistics", m.Name)
	})

	t.Run("same id twice is a no-op", func(t *testing.T) {
		s := New()
		s.AddModel(logisticsModel())

		s.SetCurrentModel("mod.1")
		s.SetCurrentModel("mod.1")

		_, ok := s.CurrentModel()
		assert.True(t, ok)
	})

	t.Run("unknown id silently clears the selection", func(t *testing.T) {
		s := New()
		s.AddModel(logisticsModel())
		s.SetCurrentModel("mod.1")

		s.SetCurrentModel("nope")

		_, ok := s.CurrentModel()
		assert.False(t, ok, "not found and none selected are indistinguishable")
	})

	t.Run("no selection on an empty store", func(t *testing.T) {
		s := New()
		_, ok := s.CurrentModel()
		assert.False(t, ok)
	})
}

func TestSetCurrentInstance(t *testing.T) {
	t.Run("selects a full instance value", func(t *testing.T) {
		s := New()
		s.SetCurrentInstance(models.Instance{ID: "inst.1", Name: "Ship Goods"})

		inst, ok := s.CurrentInstance()
		require.True(t, ok)
		assert.Equal(t, "Ship Goods", inst.Name)
	})

	t.Run("same id is a no-op", func(t *testing.T) {
		s := New()
		s.SetCurrentInstance(models.Instance{ID: "inst.1", Name: "Original"})
		s.SetCurrentInstance(models.Instance{ID: "inst.1", Name: "Replacement"})

		inst, _ := s.CurrentInstance()
		assert.Equal(t, "Original", inst.Name)
	})

	t.Run("different id replaces outright", func(t *testing.T) {
		s := New()
		s.SetCurrentInstance(models.Instance{ID: "inst.1", Name: "First"})
		s.SetCurrentInstance(models.Instance{ID: "inst.2", Name: "Second"})

		inst, _ := s.CurrentInstance()
		assert.Equal(t, "Second", inst.Name)
	})

	t.Run("clear drops the selection", func(t *testing.T) {
		s := New()
		s.SetCurrentInstance(models.Instance{ID: "inst.1"})
		s.ClearCurrentInstance()

		_, ok := s.CurrentInstance()
		assert.False(t, ok)
	})

	t.Run("selection does not switch the current model", func(t *testing.T) {
		s := New()
		s.AddModel(logisticsModel())
		s.SetCurrentModel("mod.1")

		s.SetCurrentInstance(models.Instance{ID: "other.instance", Name: "Elsewhere"})

		m, ok := s.CurrentModel()
		require.True(t, ok)
		assert.Equal(t, "mod.1", m.ID)
	})
}

func TestGoToReference(t *testing.T) {
	s := New()
	s.AddModel(logisticsModel())
	s.AddModel(models.Model{
		ID:   "mod.2",
		Name: "Assets",
		Instances: []models.Instance{
			{ID: "inst.9", Class: models.ClassAsset, Name: "Truck", Denomination: "Delivery truck"},
		},
	})

	t.Run("selects model and instance by name", func(t *testing.T) {
		ok := s.GoToReference("Assets", "Truck")

		assert.True(t, ok)
		m, found := s.CurrentModel()
		require.True(t, found)
		assert.Equal(t, "mod.2", m.ID)
		inst, found := s.CurrentInstance()
		require.True(t, found)
		assert.Equal(t, "inst.9", inst.ID)
	})

	t.Run("matches by display value too", func(t *testing.T) {
		s.ClearCurrentInstance()
		ok := s.GoToReference("Assets", "Delivery truck")

		assert.True(t, ok)
		inst, found := s.CurrentInstance()
		require.True(t, found)
		assert.Equal(t, "inst.9", inst.ID)
	})

	t.Run("unknown model leaves selection untouched", func(t *testing.T) {
		before, _ := s.CurrentModel()
		ok := s.GoToReference("Nowhere", "Truck")

		assert.False(t, ok)
		after, _ := s.CurrentModel()
		assert.Equal(t, before.ID, after.ID)
	})

	t.Run("known model with unknown instance selects the model only", func(t *testing.T) {
		ok := s.GoToReference("Logistics", "Not There")

		assert.False(t, ok)
		m, found := s.CurrentModel()
		require.True(t, found)
		assert.Equal(t, "mod.1", m.ID)
	})
}

func TestSVGArtifacts(t *testing.T) {
	s := New()

	t.Run("missing artifact", func(t *testing.T) {
		_, ok := s.SVG("Logistics")
		assert.False(t, ok)
	})

	t.Run("stored artifact round-trips opaquely", func(t *testing.T) {
		artifact := json.RawMessage(`{"shapes":[{"kind":"rect"}]}`)
		s.AddSVG("Logistics", artifact)

		got, ok := s.SVG("Logistics")
		require.True(t, ok)
		assert.JSONEq(t, string(artifact), string(got))
	})
}
