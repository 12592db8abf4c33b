package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mchuang-tw/salespoints/internal/model"
)

func TestSuggestFileName(t *testing.T) {
	tests := []struct {
		name string
		rows []model.SalesRow
		want string
	}{
		{
			name: "salesperson and month from first rows",
			rows: []model.SalesRow{
				{SalesPersonName: "王小明", OriginalOrderID: "0012345"},
				{SalesPersonName: "李大華", OriginalOrderID: "0067890"},
			},
			want: "王小明12月點數表.xlsx",
		},
		{
			name: "skips rows with blank salesperson",
			rows: []model.SalesRow{
				{SalesPersonName: "  ", OriginalOrderID: ""},
				{SalesPersonName: "李大華", OriginalOrderID: "0034567"},
			},
			want: "李大華34月點數表.xlsx",
		},
		{
			name: "no salesperson anywhere",
			rows: []model.SalesRow{
				{OriginalOrderID: "0051234"},
			},
			want: "未知業務51月點數表.xlsx",
		},
		{
			name: "short order id falls back to placeholder month",
			rows: []model.SalesRow{
				{SalesPersonName: "王小明", OriginalOrderID: "123"},
			},
			want: "王小明XX月點數表.xlsx",
		},
		{
			name: "no rows at all",
			rows: nil,
			want: "未知業務XX月點數表.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestFileName(tt.rows))
		})
	}
}
