package engine

import (
	"github.com/mchuang-tw/salespoints/internal/model"
)

// SetDisposition returns a copy of rows with the identified row's
// disposition changed and its points recomputed from the original point
// value. No filter rules re-run and no other field changes; repeated
// identical calls are idempotent. The second return reports whether the id
// matched a row.
//
// Processing stats are deliberately untouched: they remain a snapshot of
// the original run even though 刪除 rows will no longer export.
func SetDisposition(rows []model.SalesRow, id string, d model.Disposition) ([]model.SalesRow, bool) {
	updated := make([]model.SalesRow, len(rows))
	copy(updated, rows)

	for i := range updated {
		if updated[i].ID != id {
			continue
		}
		updated[i].Disposition = d
		updated[i].Points = model.PointsFor(d, updated[i].OriginalPoints)
		return updated, true
	}
	return updated, false
}
