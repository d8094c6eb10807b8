package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"lintsweep/internal/config"
	"lintsweep/internal/model"
	"lintsweep/internal/output"
	"lintsweep/internal/report"
)

// exitError carries an exit status through cobra without a usage dump.
type exitError struct {
	msg string
}

func (e exitError) Error() string { return e.msg }

// render writes the report in the selected format and enforces the
// strict / require-reason exit policies.
func render(rep *report.Report, rs config.ReportSettings) error {
	sel, err := output.ResolveFields(rs.Fields)
	if err != nil {
		return err
	}

	switch rs.Output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(rep); err != nil {
			return err
		}
	case "ndjson":
		if err := output.WriteNDJSON(os.Stdout, rep.Findings); err != nil {
			return err
		}
	case "csv":
		if err := output.WriteCSV(os.Stdout, rep.Findings, sel); err != nil {
			return err
		}
	case "markdown":
		if err := output.WriteMarkdownTable(os.Stdout, rep.Findings, sel); err != nil {
			return err
		}
	case "tsv":
		if err := output.WriteTSV(os.Stdout, rep.Findings, sel); err != nil {
			return err
		}
	default:
		if err := output.WriteTable(os.Stdout, rep.Findings, sel, output.TableOptions{Colorize: !color.NoColor}); err != nil {
			return err
		}
	}

	if rs.Output != "json" && len(rep.Anomalies) > 0 {
		// Anomalies always stay visible; JSON output already carries them.
		output.WriteAnomalies(os.Stderr, rep.Anomalies, !color.NoColor)
	}

	if rs.RequireReason {
		if missing := withoutReason(rep.Findings); len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "%d suppression(s) lack a justification:\n", len(missing))
			for i, f := range missing {
				fmt.Fprintf(os.Stderr, "%d. %s, lines %s\n", i+1, f.File, output.FormatRange(f.Range))
			}
			return exitError{msg: "suppressions without justification"}
		}
	}
	if rs.Strict && len(rep.Anomalies) > 0 {
		return exitError{msg: fmt.Sprintf("%d anomaly(ies) detected", len(rep.Anomalies))}
	}
	return nil
}

func withoutReason(findings []model.Finding) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if len(f.Reasons) == 0 {
			out = append(out, f)
		}
	}
	return out
}
