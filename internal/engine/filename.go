package engine

import (
	"fmt"
	"strings"

	"github.com/mchuang-tw/salespoints/internal/model"
)

const (
	// fallbackSalesPerson names the output file when no row carries a
	// salesperson.
	fallbackSalesPerson = "未知業務"
	// fallbackMonth is used when no order id is long enough to carry a
	// month code.
	fallbackMonth = "XX"
)

// SuggestFileName synthesizes a human-meaningful output name from the
// finalized rows: the first non-blank salesperson plus the month code taken
// from characters 3..5 of the first non-blank order id. The name is
// advisory only and never validated against filesystem constraints.
func SuggestFileName(rows []model.SalesRow) string {
	salesPerson := fallbackSalesPerson
	for _, row := range rows {
		if name := strings.TrimSpace(row.SalesPersonName); name != "" {
			salesPerson = name
			break
		}
	}

	month := fallbackMonth
	for _, row := range rows {
		if row.OriginalOrderID == "" {
			continue
		}
		if r := []rune(row.OriginalOrderID); len(r) >= 5 {
			month = string(r[3:5])
		}
		break
	}

	return fmt.Sprintf("%s%s月點數表.xlsx", salesPerson, month)
}
