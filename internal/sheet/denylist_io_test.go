package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mchuang-tw/salespoints/internal/common"
)

func TestReadDenyIDsFromWorkbookFlattensAllCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// Scattered across rows and columns with blanks mixed in.
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"028968", "", "028976"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{" 029583 "}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"", "", "000464"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ids, err := ReadDenyIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"028968", "028976", "029583", "000464"}, ids)
}

func TestReadDenyIDsFromText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.txt")
	require.NoError(t, os.WriteFile(path, []byte("028968, 028976\n029583,\n"), 0600))

	ids, err := ReadDenyIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"028968", "028976", "029583"}, ids)
}

func TestReadDenyIDsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.csv")
	require.NoError(t, os.WriteFile(path, []byte("A1,B2\nC3"), 0600))

	ids, err := ReadDenyIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2", "C3"}, ids)
}

func TestReadDenyIDsCorruptWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deny.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0600))

	_, err := ReadDenyIDs(path)
	assert.ErrorIs(t, err, common.ErrImportFailed)
}

func TestReadDenyIDsMissingFile(t *testing.T) {
	_, err := ReadDenyIDs(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, common.ErrImportFailed)
}

func TestWriteDenyIDsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.xlsx")
	ids := []string{"028968", "028976", "029583"}

	require.NoError(t, WriteDenyIDs(ids, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetDenyList}, f.GetSheetList())

	rows, err := f.GetRows(SheetDenyList)
	require.NoError(t, err)
	require.Len(t, rows, len(ids))
	for i, id := range ids {
		require.Len(t, rows[i], 1, "export is single column")
		assert.Equal(t, id, rows[i][0])
	}

	// And the importer reads its own export back.
	got, err := ReadDenyIDs(path)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}
