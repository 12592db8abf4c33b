// Package sheet reads and writes the xlsx files the pipeline exchanges
// with the outside world.
package sheet

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/model"
)

// ReadRecords parses the first sheet of an uploaded workbook into raw
// records keyed by the header row. Absent cells read as the empty string.
// It carries no business-rule knowledge.
func ReadRecords(r io.Reader) ([]model.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrEmptySource
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnreadable, err)
	}
	if len(rows) < 2 {
		return nil, common.ErrEmptySource
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	records := make([]model.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(model.RawRecord, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			if i < len(row) {
				rec[label] = row[i]
			} else {
				rec[label] = ""
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// ReadRecordsFile is ReadRecords over a file on disk.
func ReadRecordsFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	return ReadRecords(f)
}
