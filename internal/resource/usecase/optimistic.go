package usecase

import "github.com/fekuna/omnipos-backoffice/internal/model"

// ApplyOptimistic returns rows without the record id. rows is not modified.
func ApplyOptimistic[T model.Entity](rows []T, id string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if r.GetID() != id {
			out = append(out, r)
		}
	}
	return out
}

// RollbackOnFailure puts the record id from original back into current at
// the position it had in original. Rows removed by other mutations since the
// snapshot stay removed.
func RollbackOnFailure[T model.Entity](current, original []T, id string) []T {
	for _, r := range current {
		if r.GetID() == id {
			return append([]T(nil), current...)
		}
	}
	idx := -1
	for i, r := range original {
		if r.GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return append([]T(nil), current...)
	}

	// Count the survivors that preceded the record to find its slot.
	present := make(map[string]bool, len(current))
	for _, r := range current {
		present[r.GetID()] = true
	}
	pos := 0
	for _, r := range original[:idx] {
		if present[r.GetID()] {
			pos++
		}
	}

	out := make([]T, 0, len(current)+1)
	out = append(out, current[:pos]...)
	out = append(out, original[idx])
	out = append(out, current[pos:]...)
	return out
}
