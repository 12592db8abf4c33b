package model

// ProcessingStats is a snapshot of one processing run. It is computed once
// during filtering and never updated afterwards: manual overrides (including
// 刪除) do not change these counts, so FinalCount can diverge from the number
// of rows that actually export. That divergence is intentional.
type ProcessingStats struct {
	CategoryCounts         map[string]int
	OriginalCount          int
	FinalCount             int
	RemovedCount           int
	MissingCustomerIDCount int
	PositiveDebtCount      int
	ZeroPointsCount        int
	ZeroPriceCount         int
	ExcludedCategoryCount  int
	ExcludedProductIDCount int
}

// RemovedTotal sums the per-reason rejection counters. For any input,
// RemovedTotal()+FinalCount equals OriginalCount.
func (s *ProcessingStats) RemovedTotal() int {
	return s.MissingCustomerIDCount +
		s.PositiveDebtCount +
		s.ZeroPointsCount +
		s.ZeroPriceCount +
		s.ExcludedCategoryCount +
		s.ExcludedProductIDCount
}

// Result bundles everything one processing run hands back to the caller.
type Result struct {
	Stats             *ProcessingStats
	SuggestedFileName string
	Rows              []SalesRow
}
