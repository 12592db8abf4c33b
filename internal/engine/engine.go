// Package engine implements the deterministic filter, classify, sort and
// name-derivation pipeline over raw sales records.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/model"
)

// Source column labels. Unrecognized columns are ignored; absent recognized
// columns read as the empty string.
const (
	FieldCustomerID   = "客戶編號"
	FieldCurrentDebt  = "本次欠款"
	FieldStaffPoints  = "員工點數"
	FieldPoints       = "點數"
	FieldUnitPrice    = "單價"
	FieldCategoryCode = "品類一"
	FieldUnit         = "單位"
	FieldProductID    = "品項編號"
	FieldOrderID      = "單號"
	FieldProductName  = "品名"
	FieldQuantity     = "數量"
)

// salesPersonFields are the column labels checked, in order, for the
// salesperson name. Source exports are inconsistent about which one they use.
var salesPersonFields = []string{"業務姓名", "業務", "銷售人員", "業務員"}

// excludedCategoryCode and excludedUnits define the category/unit
// combination that is always filtered out.
const excludedCategoryCode = "05-2"

var excludedUnits = []string{"罐", "瓶"}

// coerce converts a cell to a number. Blank or unparsable cells read as 0;
// the pipeline never propagates a parse failure. Formatted values such as
// "1,200" are unparsable on purpose and read as 0.
func coerce(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// resolvePoints reads the point value from the primary field, falling back
// to the secondary when the primary is blank.
func resolvePoints(rec model.RawRecord) float64 {
	if strings.TrimSpace(rec[FieldStaffPoints]) != "" {
		return coerce(rec[FieldStaffPoints])
	}
	return coerce(rec[FieldPoints])
}

// resolveSalesPerson returns the first non-blank salesperson cell.
func resolveSalesPerson(rec model.RawRecord) string {
	for _, field := range salesPersonFields {
		if v := strings.TrimSpace(rec[field]); v != "" {
			return v
		}
	}
	return ""
}

// displayDate derives the 2-character period code shown in the 日期 column.
// Order ids of at least 7 characters carry the code at positions 5..7;
// shorter ids are shown verbatim.
func displayDate(orderID string) string {
	if r := []rune(orderID); len(r) >= 7 {
		return string(r[5:7])
	}
	return orderID
}

// Process applies the six exclusion rules to records in order, classifies
// the survivors, sorts them, and derives a suggested output file name.
// Each record is counted against only the first rule it fails. The deny
// list is an explicit input; the engine holds no ambient state.
//
// Process never panics past this boundary: an unexpected failure inside the
// pipeline is returned as ErrProcessingFailed.
func Process(records []model.RawRecord, denyIDs []string) (result *model.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", common.ErrProcessingFailed, r)
		}
	}()

	stats := &model.ProcessingStats{
		OriginalCount:  len(records),
		CategoryCounts: make(map[string]int),
	}

	denySet := make(map[string]bool, len(denyIDs))
	for _, id := range denyIDs {
		denySet[strings.TrimSpace(id)] = true
	}

	rows := make([]model.SalesRow, 0, len(records))

	for _, rec := range records {
		customerID := strings.TrimSpace(rec[FieldCustomerID])
		if customerID == "" {
			stats.MissingCustomerIDCount++
			continue
		}

		if coerce(rec[FieldCurrentDebt]) > 0 {
			stats.PositiveDebtCount++
			continue
		}

		points := resolvePoints(rec)
		if points == 0 {
			stats.ZeroPointsCount++
			continue
		}

		price := coerce(rec[FieldUnitPrice])
		if price == 0 {
			stats.ZeroPriceCount++
			continue
		}

		categoryCode := strings.TrimSpace(rec[FieldCategoryCode])
		unit := strings.TrimSpace(rec[FieldUnit])
		if categoryCode == excludedCategoryCode && isExcludedUnit(unit) {
			stats.ExcludedCategoryCount++
			continue
		}

		productID := strings.TrimSpace(rec[FieldProductID])
		if denySet[productID] {
			stats.ExcludedProductIDCount++
			continue
		}

		category := model.CategoryForCode(categoryCode)
		stats.CategoryCounts[category]++

		orderID := rec[FieldOrderID]
		rows = append(rows, model.SalesRow{
			ID:              uuid.NewString(),
			OriginalPoints:  points,
			OriginalOrderID: orderID,
			Disposition:     model.DispositionDevelop,
			Category:        category,
			Date:            displayDate(orderID),
			CustomerID:      customerID,
			ProductID:       productID,
			ProductName:     rec[FieldProductName],
			UnitPrice:       price,
			Quantity:        coerce(rec[FieldQuantity]),
			Points:          points,
			SalesPersonName: resolveSalesPerson(rec),
		})
	}

	stats.FinalCount = len(rows)
	stats.RemovedCount = stats.OriginalCount - stats.FinalCount

	SortRows(rows)

	slog.Debug("processed sales records",
		"original", stats.OriginalCount,
		"final", stats.FinalCount,
		"removed", stats.RemovedCount)

	return &model.Result{
		Rows:              rows,
		Stats:             stats,
		SuggestedFileName: SuggestFileName(rows),
	}, nil
}

func isExcludedUnit(unit string) bool {
	for _, u := range excludedUnits {
		if unit == u {
			return true
		}
	}
	return false
}
