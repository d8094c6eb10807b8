package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"lintsweep/internal/model"
	"lintsweep/internal/textutil"
)

const minReasonWidth = 24

var (
	grammarColor = color.New(color.FgCyan)
	scopeColor   = color.New(color.FgYellow)
	warnColor    = color.New(color.FgRed, color.Bold)
)

// TableOptions controls table rendering.
type TableOptions struct {
	Colorize bool
	// Width caps the REASON column; 0 derives it from the terminal.
	Width int
}

// WriteTable renders findings as an aligned text table. Long reason cells
// are truncated by display width so wide characters do not wrap rows.
func WriteTable(w io.Writer, findings []model.Finding, sel FieldSelection, opts TableOptions) error {
	reasonWidth := reasonBudget(opts.Width, len(sel.Fields))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Headers(sel.Fields), "\t"))
	for _, f := range findings {
		row := RowValues(f, sel.Fields)
		for i, field := range sel.Fields {
			switch field.Key {
			case "reason":
				row[i] = textutil.TruncateByWidth(row[i], reasonWidth, "…")
			case "grammar":
				if opts.Colorize {
					row[i] = grammarColor.Sprint(row[i])
				}
			case "scope":
				if opts.Colorize {
					row[i] = scopeColor.Sprint(row[i])
				}
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// WriteTSV renders findings tab separated without alignment padding.
func WriteTSV(w io.Writer, findings []model.Finding, sel FieldSelection) error {
	if _, err := fmt.Fprintln(w, strings.Join(Headers(sel.Fields), "\t")); err != nil {
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(w, strings.Join(RowValues(f, sel.Fields), "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnomalies prints anomalies on w, one per line.
func WriteAnomalies(w io.Writer, anomalies []model.Anomaly, colorize bool) {
	for _, a := range anomalies {
		loc := a.File
		if a.Line > 0 {
			loc = fmt.Sprintf("%s:%d", a.File, a.Line)
		}
		kind := string(a.Kind)
		if colorize {
			kind = warnColor.Sprint(kind)
		}
		fmt.Fprintf(w, "%s: %s: %s\n", kind, loc, a.Message)
	}
}

// reasonBudget derives the reason column width from the terminal width,
// leaving room for the other columns.
func reasonBudget(width, columns int) int {
	if width <= 0 {
		if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = cols
		} else {
			width = 120
		}
	}
	budget := width - (columns-1)*18
	if budget < minReasonWidth {
		return minReasonWidth
	}
	return budget
}
