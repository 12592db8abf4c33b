package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchuang-tw/salespoints/internal/model"
)

// passingRecord builds a record that survives all six exclusion rules.
func passingRecord(overrides map[string]string) model.RawRecord {
	rec := model.RawRecord{
		"客戶編號": "C001",
		"本次欠款": "0",
		"點數":   "8",
		"單價":   "20",
		"品類一":  "04-6",
		"單位":   "盒",
		"品項編號": "P001",
		"單號":   "0012345",
		"品名":   "測試品項",
		"數量":   "2",
		"業務姓名": "王小明",
	}
	for k, v := range overrides {
		rec[k] = v
	}
	return rec
}

func TestProcessRejectionReasons(t *testing.T) {
	tests := []struct {
		record model.RawRecord
		check  func(*testing.T, *model.ProcessingStats)
		name   string
	}{
		{
			name:   "missing customer id",
			record: passingRecord(map[string]string{"客戶編號": ""}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.MissingCustomerIDCount)
			},
		},
		{
			name:   "whitespace customer id",
			record: passingRecord(map[string]string{"客戶編號": "   "}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.MissingCustomerIDCount)
			},
		},
		{
			name:   "positive debt",
			record: passingRecord(map[string]string{"本次欠款": "50"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.PositiveDebtCount)
			},
		},
		{
			name:   "non-numeric debt reads as zero",
			record: passingRecord(map[string]string{"本次欠款": "n/a"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 0, s.PositiveDebtCount)
				assert.Equal(t, 1, s.FinalCount)
			},
		},
		{
			name:   "comma-formatted debt reads as zero",
			record: passingRecord(map[string]string{"本次欠款": "1,200"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 0, s.PositiveDebtCount)
				assert.Equal(t, 1, s.FinalCount)
			},
		},
		{
			name:   "zero points",
			record: passingRecord(map[string]string{"點數": "0"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.ZeroPointsCount)
			},
		},
		{
			name:   "non-numeric points rejected as zero",
			record: passingRecord(map[string]string{"點數": "abc"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.ZeroPointsCount)
			},
		},
		{
			name:   "zero price",
			record: passingRecord(map[string]string{"單價": "0"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.ZeroPriceCount)
			},
		},
		{
			name:   "excluded category and unit (罐)",
			record: passingRecord(map[string]string{"品類一": "05-2", "單位": "罐"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.ExcludedCategoryCount)
			},
		},
		{
			name:   "excluded category and unit (瓶)",
			record: passingRecord(map[string]string{"品類一": "05-2", "單位": "瓶"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 1, s.ExcludedCategoryCount)
			},
		},
		{
			name:   "excluded category with other unit survives",
			record: passingRecord(map[string]string{"品類一": "05-2", "單位": "箱"}),
			check: func(t *testing.T, s *model.ProcessingStats) {
				assert.Equal(t, 0, s.ExcludedCategoryCount)
				assert.Equal(t, 1, s.FinalCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Process([]model.RawRecord{tt.record}, nil)
			require.NoError(t, err)
			tt.check(t, result.Stats)
			assert.Equal(t, result.Stats.OriginalCount,
				result.Stats.FinalCount+result.Stats.RemovedTotal())
		})
	}
}

func TestProcessShortCircuitsAtFirstFailingRule(t *testing.T) {
	// Fails every rule at once; only the first should count.
	rec := model.RawRecord{
		"客戶編號": "",
		"本次欠款": "100",
		"點數":   "0",
		"單價":   "0",
		"品類一":  "05-2",
		"單位":   "罐",
		"品項編號": "P100",
	}

	result, err := Process([]model.RawRecord{rec}, []string{"P100"})
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 1, stats.MissingCustomerIDCount)
	assert.Equal(t, 0, stats.PositiveDebtCount)
	assert.Equal(t, 0, stats.ZeroPointsCount)
	assert.Equal(t, 0, stats.ZeroPriceCount)
	assert.Equal(t, 0, stats.ExcludedCategoryCount)
	assert.Equal(t, 0, stats.ExcludedProductIDCount)
}

func TestProcessDenyList(t *testing.T) {
	records := []model.RawRecord{
		passingRecord(map[string]string{"品項編號": "P100"}),
		passingRecord(map[string]string{"品項編號": " P100 "}), // trimmed before matching
		passingRecord(map[string]string{"品項編號": "P200"}),
	}

	result, err := Process(records, []string{"P100"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.ExcludedProductIDCount)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "P200", result.Rows[0].ProductID)
}

func TestProcessSurvivorFields(t *testing.T) {
	result, err := Process([]model.RawRecord{passingRecord(nil)}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, model.DispositionDevelop, row.Disposition)
	assert.Equal(t, model.CategoryPediatricNutrition, row.Category)
	assert.Equal(t, "45", row.Date, "date code is chars 5..7 of the order id")
	assert.Equal(t, "C001", row.CustomerID)
	assert.Equal(t, "P001", row.ProductID)
	assert.Equal(t, "測試品項", row.ProductName)
	assert.Equal(t, 20.0, row.UnitPrice)
	assert.Equal(t, 2.0, row.Quantity)
	assert.Equal(t, 8.0, row.Points)
	assert.Equal(t, 8.0, row.OriginalPoints)
	assert.Equal(t, "0012345", row.OriginalOrderID)
	assert.Equal(t, "王小明", row.SalesPersonName)
	assert.Equal(t, 1, result.Stats.CategoryCounts[model.CategoryPediatricNutrition])
}

func TestProcessShortOrderIDShownVerbatim(t *testing.T) {
	result, err := Process([]model.RawRecord{
		passingRecord(map[string]string{"單號": "123"}),
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "123", result.Rows[0].Date)
}

func TestProcessPointsFieldFallback(t *testing.T) {
	tests := []struct {
		name   string
		staff  string
		plain  string
		points float64
	}{
		{"primary field wins", "6", "9", 6},
		{"blank primary falls back", "", "9", 9},
		{"whitespace primary falls back", "  ", "9", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Process([]model.RawRecord{
				passingRecord(map[string]string{"員工點數": tt.staff, "點數": tt.plain}),
			}, nil)
			require.NoError(t, err)
			require.Len(t, result.Rows, 1)
			assert.Equal(t, tt.points, result.Rows[0].Points)
		})
	}
}

func TestProcessSalesPersonFallbackFields(t *testing.T) {
	tests := []struct {
		name   string
		record model.RawRecord
		want   string
	}{
		{
			name:   "primary label",
			record: passingRecord(map[string]string{"業務姓名": "甲"}),
			want:   "甲",
		},
		{
			name:   "second label",
			record: passingRecord(map[string]string{"業務姓名": "", "業務": "乙"}),
			want:   "乙",
		},
		{
			name:   "third label",
			record: passingRecord(map[string]string{"業務姓名": "", "銷售人員": "丙"}),
			want:   "丙",
		},
		{
			name:   "fourth label",
			record: passingRecord(map[string]string{"業務姓名": "", "業務員": "丁"}),
			want:   "丁",
		},
		{
			name:   "all absent",
			record: passingRecord(map[string]string{"業務姓名": ""}),
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Process([]model.RawRecord{tt.record}, nil)
			require.NoError(t, err)
			require.Len(t, result.Rows, 1)
			assert.Equal(t, tt.want, result.Rows[0].SalesPersonName)
		})
	}
}

func TestProcessCounterSumProperty(t *testing.T) {
	records := []model.RawRecord{
		passingRecord(nil),
		passingRecord(map[string]string{"客戶編號": ""}),
		passingRecord(map[string]string{"本次欠款": "1"}),
		passingRecord(map[string]string{"點數": ""}),
		passingRecord(map[string]string{"單價": "abc"}),
		passingRecord(map[string]string{"品類一": "05-2", "單位": "瓶"}),
		passingRecord(map[string]string{"品項編號": "DENY"}),
		passingRecord(map[string]string{"品類一": "everything-else"}),
	}

	result, err := Process(records, []string{"DENY"})
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, len(records), stats.OriginalCount)
	assert.Equal(t, stats.OriginalCount, stats.FinalCount+stats.RemovedTotal())
	assert.Equal(t, stats.RemovedCount, stats.RemovedTotal())
	assert.Equal(t, 2, stats.FinalCount)
	assert.Equal(t, 1, stats.CategoryCounts[model.CategoryOther])
}

func TestProcessEmptyInput(t *testing.T) {
	result, err := Process(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.Stats.OriginalCount)
	assert.Equal(t, "未知業務XX月點數表.xlsx", result.SuggestedFileName)
}

func TestProcessRowIDsUnique(t *testing.T) {
	records := make([]model.RawRecord, 50)
	for i := range records {
		records[i] = passingRecord(nil)
	}

	result, err := Process(records, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 50)

	seen := make(map[string]bool)
	for _, row := range result.Rows {
		assert.False(t, seen[row.ID], "duplicate row id %s", row.ID)
		seen[row.ID] = true
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"0", 0},
		{"12", 12},
		{"12.5", 12.5},
		{"-3", -3},
		{"1,200", 0},
		{"abc", 0},
		{"12abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, coerce(tt.in))
		})
	}
}
