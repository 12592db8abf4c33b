package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/denylist"
)

// SheetDenyList names the single sheet of an exported deny-list backup.
const SheetDenyList = "排除清單"

// ReadDenyIDs loads product identifiers from a file. Spreadsheets are
// flattened: every cell of the first sheet becomes one identifier,
// independent of row and column structure. Anything else is treated as
// comma/newline delimited text. A failed read never partially applies.
func ReadDenyIDs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return readDenyIDsWorkbook(path)
	default:
		return readDenyIDsText(path)
	}
}

func readDenyIDsWorkbook(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrImportFailed, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrImportFailed
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrImportFailed, err)
	}

	var ids []string
	for _, row := range rows {
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				ids = append(ids, cell)
			}
		}
	}
	return ids, nil
}

func readDenyIDsText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrImportFailed, err)
	}
	return denylist.ParseFreeText(string(data)), nil
}

// WriteDenyIDs exports identifiers as a single-column workbook, one id per
// row.
func WriteDenyIDs(ids []string, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetDenyList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, id := range ids {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(SheetDenyList, cell, id); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
