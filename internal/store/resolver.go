// Package store holds the parsed models of a viewing session together with
// the current selection and rendered-diagram artifacts. All mutation goes
// through its own operations; readers always observe either the pre- or
// post-update snapshot, never a partially updated one.
package store

import "github.com/femviewer/core/internal/models"

// InstancesThatReference computes the reverse relation of a single
// reference: every instance, in any model, whose reference slot of the
// given kind points at target. Records preserve scan order (model import
// order, then instance order within each model). The scan is linear over
// all instances per call; models are added rarely relative to browsing
// queries, so recomputation is acceptable at this scale. A reverse index
// keyed by (model name, object name), rebuilt on AddModel, is the first
// optimization if that changes.
func (s *Store) InstancesThatReference(target models.Instance, kind models.InterrefKind) []models.ReferenceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.ReferenceRecord, 0)

	owner, ok := s.ownerOfLocked(target)
	if !ok {
		return records
	}

	for _, m := range s.models {
		for _, inst := range m.Instances {
			ref := inst.Interrefs.ByKind(kind)
			if ref == nil || ref.TObjName == "" {
				continue
			}
			if ref.TModelName != owner.Name {
				continue
			}
			if ref.TObjName != target.Name && ref.TObjName != target.Denomination {
				continue
			}
			records = append(records, models.ReferenceRecord{
				ReferencedByModel:    m.Name,
				ReferencedByInstance: inst.Name,
			})
		}
	}
	return records
}

// ownerOfLocked finds the model that holds target, by instance id. Instance
// ids are only unique within a model, so the first match in import order
// wins.
func (s *Store) ownerOfLocked(target models.Instance) (models.Model, bool) {
	for _, m := range s.models {
		for _, inst := range m.Instances {
			if inst.ID == target.ID {
				return m, true
			}
		}
	}
	return models.Model{}, false
}
