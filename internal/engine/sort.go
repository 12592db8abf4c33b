package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mchuang-tw/salespoints/internal/model"
)

// SortRows orders rows in place by category rank, then by original order
// id. Order ids compare numerically when both sides parse as numbers and
// lexicographically otherwise. The sort is stable, so rows with equal keys
// keep their original relative order.
func SortRows(rows []model.SalesRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := model.CategoryRank(rows[i].Category), model.CategoryRank(rows[j].Category)
		if ri != rj {
			return ri < rj
		}
		return lessOrderID(rows[i].OriginalOrderID, rows[j].OriginalOrderID)
	})
}

func lessOrderID(a, b string) bool {
	na, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	nb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return strings.Compare(a, b) < 0
}
