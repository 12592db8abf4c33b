package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mchuang-tw/salespoints/internal/cli"
	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/engine"
	"github.com/mchuang-tw/salespoints/internal/model"
	"github.com/mchuang-tw/salespoints/internal/sheet"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file.xlsx>",
		Short: "Filter, classify and export a sales-export spreadsheet",
		Long: `Process runs the full pipeline over the first sheet of the given workbook:
rows failing any exclusion rule are dropped (with a tally per reason), the
survivors are classified, sorted and written to a multi-sheet workbook.

Examples:
  # Process and export under the suggested file name
  salespoints process 銷售明細.xlsx

  # Review dispositions interactively before exporting
  salespoints process 銷售明細.xlsx --review

  # Inspect without writing anything
  salespoints process 銷售明細.xlsx --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: derived from the data)")
	cmd.Flags().BoolP("review", "r", false, "review dispositions interactively before export")
	cmd.Flags().BoolP("dry-run", "d", false, "process and report without writing a file")
	cmd.Flags().Int("limit", 15, "number of rows shown in the preview table")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	review, _ := cmd.Flags().GetBool("review")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	denyIDs := store.LoadDenyList(ctx)

	records, err := sheet.ReadRecordsFile(args[0])
	switch {
	case errors.Is(err, common.ErrEmptySource):
		return common.NewUserError("the file contains no data rows", err)
	case errors.Is(err, common.ErrSourceUnreadable):
		return common.NewUserError("failed to read the file; make sure it is an intact .xlsx workbook", err)
	case err != nil:
		return err
	}

	result, err := engine.Process(records, denyIDs)
	if err != nil {
		return common.NewUserError("processing failed; check the file's format", err)
	}

	fmt.Fprintln(out, cli.RenderBox(cli.SheetIcon+" Processing summary", cli.FormatStats(result.Stats)))
	printPreview(cmd, result.Rows, limit)

	if review {
		session := cli.NewReviewSession(result.Rows, result.Stats, cmd.InOrStdin(), out)
		rows, err := session.Run(ctx)
		if err != nil {
			return err
		}
		result.Rows = rows
	}

	if dryRun {
		fmt.Fprintln(out, cli.FormatWarning("dry run, nothing written"))
		return nil
	}

	if output == "" {
		output = result.SuggestedFileName
	}
	if err := sheet.WriteWorkbook(result.Rows, output); err != nil {
		return common.NewUserError("failed to write the export workbook", err)
	}

	develop, repurchase := countExported(result.Rows)
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s exported %s (%s %d 筆, %s %d 筆)",
		cli.ExportIcon, output, sheet.SheetDevelop, develop, sheet.SheetRepurchase, repurchase)))
	return nil
}

func printPreview(cmd *cobra.Command, rows []model.SalesRow, limit int) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 || limit <= 0 {
		return
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Preview (first %d of %d rows)", min(limit, len(rows)), len(rows))))
	fmt.Fprintf(out, "%-9s %-12s %-10s %-10s %-16s %8s\n", "ID", "分類", "客戶編號", "品項編號", "品名", "點數")
	for i, row := range rows {
		if i >= limit {
			break
		}
		fmt.Fprintf(out, "%-9s %-12s %-10s %-10s %-16s %8.0f\n",
			cli.ShortID(row.ID), row.Category, row.CustomerID, row.ProductID, row.ProductName, row.Points)
	}
}

func countExported(rows []model.SalesRow) (develop, repurchase int) {
	for _, row := range rows {
		switch row.Disposition {
		case model.DispositionDevelop:
			develop++
		case model.DispositionRepurchase:
			repurchase++
		}
	}
	return develop, repurchase
}
