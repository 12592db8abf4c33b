package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/mchuang-tw/salespoints/internal/engine"
	"github.com/mchuang-tw/salespoints/internal/model"
)

// reviewHelp is printed at session start and on request.
const reviewHelp = `Commands:
  <row-id> <d|r|x>   set a row's disposition (develop / repurchase / delete)
  list               show all rows with their current disposition
  stats              show the processing summary again
  done               finish the review and continue
Row ids may be abbreviated to any unique prefix.`

// ErrAmbiguousRowID is returned when an id prefix matches more than one row.
var ErrAmbiguousRowID = errors.New("row id prefix is ambiguous")

// errNoRowMatch is returned when an id prefix matches nothing.
var errNoRowMatch = errors.New("no row matches id")

// ReviewSession is an interactive loop in which the operator overrides
// per-row dispositions before export. It owns a working copy of the rows;
// the processing stats are never touched.
type ReviewSession struct {
	reader     *NonBlockingReader
	writer     io.Writer
	bar        *progressbar.ProgressBar
	rows       []model.SalesRow
	stats      *model.ProcessingStats
	overridden map[string]bool
}

// NewReviewSession creates a review session over the processed rows. The
// stats snapshot is kept for display only.
func NewReviewSession(rows []model.SalesRow, stats *model.ProcessingStats, in io.Reader, out io.Writer) *ReviewSession {
	return &ReviewSession{
		reader: NewNonBlockingReader(in),
		writer: out,
		rows:   rows,
		stats:  stats,
		bar: progressbar.NewOptions(len(rows),
			progressbar.OptionSetDescription("rows reviewed"),
			progressbar.OptionSetWriter(out),
			progressbar.OptionClearOnFinish(),
		),
		overridden: make(map[string]bool),
	}
}

// Run drives the session until the operator finishes or the context is
// canceled, then returns the reconciled rows.
func (s *ReviewSession) Run(ctx context.Context) ([]model.SalesRow, error) {
	fmt.Fprintln(s.writer, FormatTitle("Review dispositions"))
	fmt.Fprintln(s.writer, SubtleStyle.Render(reviewHelp))
	s.printRows()

	for {
		fmt.Fprint(s.writer, FormatPrompt("review> "))

		line, err := s.reader.ReadLine(ctx)
		if errors.Is(err, ErrInputCancelled) {
			return s.rows, err
		}
		if errors.Is(err, io.EOF) {
			return s.rows, nil
		}
		if err != nil {
			return s.rows, fmt.Errorf("failed to read command: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "done", "quit", "q":
			return s.rows, nil
		case "list", "l":
			s.printRows()
			continue
		case "stats", "s":
			s.printStats()
			continue
		case "help", "h", "?":
			fmt.Fprintln(s.writer, SubtleStyle.Render(reviewHelp))
			continue
		}

		if err := s.applyCommand(line); err != nil {
			fmt.Fprintln(s.writer, FormatError(err.Error()))
		}
	}
}

// applyCommand handles an `<id-prefix> <disposition>` line.
func (s *ReviewSession) applyCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected '<row-id> <d|r|x>', got %q", line)
	}

	id, err := s.resolveRowID(fields[0])
	if err != nil {
		return err
	}

	disposition, err := model.ParseDisposition(fields[1])
	if err != nil {
		return err
	}

	rows, ok := engine.SetDisposition(s.rows, id, disposition)
	if !ok {
		return fmt.Errorf("%w: %s", errNoRowMatch, id)
	}
	s.rows = rows

	if !s.overridden[id] {
		s.overridden[id] = true
		_ = s.bar.Add(1)
	}

	row, _ := s.findRow(id)
	fmt.Fprintln(s.writer, FormatSuccess(fmt.Sprintf("%s → %s (%s 點數 %s)",
		ShortID(id), disposition, row.ProductName, formatNumber(row.Points))))
	return nil
}

// resolveRowID expands a unique id prefix to the full row id.
func (s *ReviewSession) resolveRowID(prefix string) (string, error) {
	var match string
	for _, row := range s.rows {
		if !strings.HasPrefix(row.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousRowID, prefix)
		}
		match = row.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", errNoRowMatch, prefix)
	}
	return match, nil
}

func (s *ReviewSession) findRow(id string) (model.SalesRow, bool) {
	for _, row := range s.rows {
		if row.ID == id {
			return row, true
		}
	}
	return model.SalesRow{}, false
}

func (s *ReviewSession) printRows() {
	header := fmt.Sprintf("%-9s %-12s %-10s %-10s %-12s %8s  %s",
		"ID", "分類", "客戶編號", "品項編號", "品名", "點數", "檢查")
	fmt.Fprintln(s.writer, PromptStyle.Render(header))

	for _, row := range s.rows {
		line := fmt.Sprintf("%-9s %-12s %-10s %-10s %-12s %8s  %s",
			ShortID(row.ID), row.Category, row.CustomerID, row.ProductID,
			row.ProductName, formatNumber(row.Points), row.Disposition)
		if row.Disposition == model.DispositionDelete {
			line = SubtleStyle.Render(line)
		}
		fmt.Fprintln(s.writer, line)
	}
}

func (s *ReviewSession) printStats() {
	if s.stats == nil {
		fmt.Fprintln(s.writer, FormatWarning("no processing summary for this session"))
		return
	}
	fmt.Fprintln(s.writer, RenderBox(SheetIcon+" Processing summary", FormatStats(s.stats)))
}

// ShortID keeps row ids typeable in prompts and narrow listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatNumber(n float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
}
