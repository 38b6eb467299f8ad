// Package store holds the parsed models of a viewing session together with
// the current selection and rendered-diagram artifacts. All mutation goes
// through its own operations; readers always observe either the pre- or
// post-update snapshot, never a partially updated one.
package store

import (
	"encoding/json"
	"sync"

	"github.com/femviewer/core/internal/models"
)

// Store is the process-wide, append-only collection of parsed models.
// Selection state identifies entries by id and never owns them: a selected
// id with no matching model resolves to "no selection".
type Store struct {
	mu sync.RWMutex

	models []models.Model

	currentModelID  string
	hasCurrentModel bool
	currentInstance *models.Instance

	svgs map[string]json.RawMessage
}

// New returns an empty store.
func New() *Store {
	return &Store{
		svgs: make(map[string]json.RawMessage),
	}
}

// AddModel appends a parsed model. Models are never deduplicated by id:
// re-importing the same export yields a second entry with the same id.
func (s *Store) AddModel(m models.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

// AddModels appends every model of one import in document order.
func (s *Store) AddModels(ms []models.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, ms...)
}

// Models returns a copy of the model collection in import order.
func (s *Store) Models() []models.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Model, len(s.models))
	copy(out, s.models)
	return out
}

// ModelTree returns the summary view of every model in import order.
func (s *Store) ModelTree() []models.ModelSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree := make([]models.ModelSummary, 0, len(s.models))
	for _, m := range s.models {
		tree = append(tree, m.Summary())
	}
	return tree
}

// ModelByID looks a model up by id. The first entry wins when duplicates
// exist.
func (s *Store) ModelByID(id string) (models.Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelByIDLocked(id)
}

func (s *Store) modelByIDLocked(id string) (models.Model, bool) {
	for _, m := range s.models {
		if m.ID == id {
			return m, true
		}
	}
	return models.Model{}, false
}

// SetCurrentModel selects the model with the given id. Selecting the
// already-current id is a no-op; an unknown id silently clears the
// selection, so "not found" and "none selected" are indistinguishable to
// readers.
func (s *Store) SetCurrentModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasCurrentModel && s.currentModelID == id {
		return
	}
	if _, ok := s.modelByIDLocked(id); ok {
		s.currentModelID = id
		s.hasCurrentModel = true
		return
	}
	s.currentModelID = ""
	s.hasCurrentModel = false
}

// CurrentModel resolves the current selection. A stale or absent id yields
// no selection.
func (s *Store) CurrentModel() (models.Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasCurrentModel {
		return models.Model{}, false
	}
	return s.modelByIDLocked(s.currentModelID)
}

// SetCurrentInstance replaces the instance selection. It takes a full
// instance value rather than an id so callers can select an instance from
// any model without switching the current model. Selecting an instance with
// the already-selected id is a no-op.
func (s *Store) SetCurrentInstance(inst models.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentInstance != nil && s.currentInstance.ID == inst.ID {
		return
	}
	selected := inst
	s.currentInstance = &selected
}

// CurrentInstance returns the selected instance, if any.
func (s *Store) CurrentInstance() (models.Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentInstance == nil {
		return models.Instance{}, false
	}
	return *s.currentInstance, true
}

// ClearCurrentInstance drops the instance selection.
func (s *Store) ClearCurrentInstance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentInstance = nil
}

// GoToReference moves the selection to the instance a reference points at:
// the model is matched by name, the instance by its displayed label or
// name. Reports whether both were found. An unknown model leaves the
// selection untouched; a known model with an unknown instance selects the
// model only.
func (s *Store) GoToReference(modelName, instanceName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.models {
		if m.Name != modelName {
			continue
		}
		s.currentModelID = m.ID
		s.hasCurrentModel = true
		for _, inst := range m.Instances {
			if inst.Name == instanceName || inst.DisplayValue() == instanceName {
				selected := inst
				s.currentInstance = &selected
				return true
			}
		}
		return false
	}
	return false
}

// AddSVG stores a rendered-diagram artifact under the model name. The
// artifact is opaque to this package.
func (s *Store) AddSVG(modelName string, svg json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.svgs[modelName] = svg
}

// SVG looks up the rendered-diagram artifact for a model name.
func (s *Store) SVG(modelName string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svg, ok := s.svgs[modelName]
	return svg, ok
}
