package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mchuang-tw/salespoints/internal/model"
)

// Output sheet names.
const (
	SheetDevelop     = "開發名單"
	SheetRepurchase  = "回購名單"
	SheetPlaceholder = "無資料"
)

// exportHeader is the fixed 8-column export shape. Internal fields (row id,
// original points, original order id, disposition) never export.
var exportHeader = []any{"分類", "日期", "客戶編號", "品項編號", "品名", "單價", "數量", "點數"}

// Workbook partitions rows by disposition into the develop and repurchase
// sheets. 刪除 rows appear in neither sheet; this is the only observable
// effect of that disposition. When both partitions are empty a single
// placeholder sheet is emitted so the workbook is never sheetless.
func Workbook(rows []model.SalesRow) (*excelize.File, error) {
	f := excelize.NewFile()

	partitions := []struct {
		name string
		want model.Disposition
	}{
		{SheetDevelop, model.DispositionDevelop},
		{SheetRepurchase, model.DispositionRepurchase},
	}

	written := 0
	for _, p := range partitions {
		var selected []model.SalesRow
		for _, row := range rows {
			if row.Disposition == p.want {
				selected = append(selected, row)
			}
		}
		if len(selected) == 0 {
			continue
		}
		if err := writeSheet(f, p.name, selected, written == 0); err != nil {
			return nil, err
		}
		written++
	}

	if written == 0 {
		if err := renameOrCreate(f, SheetPlaceholder, true); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteWorkbook builds the export workbook and saves it to path.
func WriteWorkbook(rows []model.SalesRow, path string) error {
	f, err := Workbook(rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows []model.SalesRow, first bool) error {
	if err := renameOrCreate(f, name, first); err != nil {
		return err
	}

	if err := f.SetSheetRow(name, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cells := []any{
			row.Category,
			row.Date,
			row.CustomerID,
			row.ProductID,
			row.ProductName,
			row.UnitPrice,
			row.Quantity,
			row.Points,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

// renameOrCreate reuses the workbook's default sheet for the first emitted
// partition and appends sheets after that.
func renameOrCreate(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	return nil
}
