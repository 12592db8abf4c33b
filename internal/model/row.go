// Package model defines the core data types for sales-points processing.
package model

import (
	"fmt"
	"math"
	"strings"
)

// Disposition is the manual check status assigned to a surviving row.
type Disposition string

const (
	// DispositionDevelop is the default status; rows export to the develop sheet.
	DispositionDevelop Disposition = "開發"
	// DispositionRepurchase halves the row's points; rows export to the repurchase sheet.
	DispositionRepurchase Disposition = "回購"
	// DispositionDelete zeroes the row's points and excludes it from export.
	DispositionDelete Disposition = "刪除"
)

// ParseDisposition maps user input to a Disposition. It accepts the native
// labels as well as English aliases and single-letter shortcuts.
func ParseDisposition(s string) (Disposition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DispositionDevelop), "develop", "d":
		return DispositionDevelop, nil
	case string(DispositionRepurchase), "repurchase", "r":
		return DispositionRepurchase, nil
	case string(DispositionDelete), "delete", "x":
		return DispositionDelete, nil
	default:
		return "", fmt.Errorf("unknown disposition %q", s)
	}
}

// PointsFor computes the effective points for a disposition from the
// original point value. Points are always a pure function of these two
// inputs; rows never accumulate independent point mutations.
func PointsFor(d Disposition, originalPoints float64) float64 {
	switch d {
	case DispositionRepurchase:
		return math.Floor(originalPoints / 2)
	case DispositionDelete:
		return 0
	default:
		return originalPoints
	}
}

// RawRecord is one source row keyed by column header. Absent cells are
// represented as the empty string, never omitted keys with special meaning;
// all numeric interpretation happens at the filter boundary.
type RawRecord map[string]string

// SalesRow is a validated, augmented record that survived filtering.
type SalesRow struct {
	// ID is an opaque token assigned at creation, stable for the row's
	// in-memory lifetime. It is the reconciliation key for overrides.
	ID string

	// OriginalPoints is the point value resolved during filtering and is
	// never mutated afterwards.
	OriginalPoints float64

	// OriginalOrderID is the order identifier exactly as it appeared in the
	// source, kept for sorting and file-name derivation.
	OriginalOrderID string

	Disposition     Disposition
	Category        string
	Date            string
	CustomerID      string
	ProductID       string
	ProductName     string
	UnitPrice       float64
	Quantity        float64
	Points          float64
	SalesPersonName string
}
