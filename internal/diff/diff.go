// Package diff detects newly filed and cancelled attendance events by
// comparing calendar snapshots across scheduled runs.
package diff

import "attendance-bot-backend/internal/attendance"

// ChangeSet is the result of comparing two snapshots. It is computed once
// per run and never persisted.
type ChangeSet struct {
	Applications  []attendance.Event
	Cancellations []attendance.Event
	HasChanges    bool
}

// Compute takes the symmetric difference of two snapshots keyed by event id.
// Ids present only in current are applications; ids present only in previous
// are cancellations. An id present in both is never reported, even if its
// fields changed: in-place edits are invisible to this diff.
func Compute(previous, current map[string]attendance.Event) ChangeSet {
	var changes ChangeSet

	for id, ev := range current {
		if _, ok := previous[id]; !ok {
			changes.Applications = append(changes.Applications, ev)
			changes.HasChanges = true
		}
	}
	for id, ev := range previous {
		if _, ok := current[id]; !ok {
			changes.Cancellations = append(changes.Cancellations, ev)
			changes.HasChanges = true
		}
	}

	return changes
}
