package output

import (
	"fmt"
	"strconv"
	"strings"

	"lintsweep/internal/model"
)

// Field is one selectable report column.
type Field struct {
	Key    string
	Header string
}

// FieldSelection is the resolved, ordered column set for a writer.
type FieldSelection struct {
	Fields []Field
}

var fieldRegistry = map[string]string{
	"file":      "FILE",
	"lines":     "LINES",
	"ecosystem": "ECOSYSTEM",
	"grammar":   "GRAMMAR",
	"scope":     "SCOPE",
	"rules":     "RULES",
	"source":    "SOURCE",
	"reason":    "REASON",
}

var defaultFieldKeys = []string{"file", "lines", "grammar", "scope", "rules", "reason"}

// ResolveFields parses a comma-separated field list; empty selects the
// default column set.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	keys := defaultFieldKeys
	if raw != "" {
		keys = nil
		for _, piece := range strings.Split(raw, ",") {
			key := strings.ToLower(strings.TrimSpace(piece))
			if key == "" {
				continue
			}
			keys = append(keys, key)
		}
		if len(keys) == 0 {
			keys = defaultFieldKeys
		}
	}
	sel := FieldSelection{}
	seen := map[string]bool{}
	for _, key := range keys {
		header, ok := fieldRegistry[key]
		if !ok {
			return sel, fmt.Errorf("unknown field: %s", key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

// Headers returns the column headers in selection order.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

// RowValues renders one finding into the selected columns.
func RowValues(f model.Finding, fields []Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		switch field.Key {
		case "file":
			out[i] = f.File
		case "lines":
			out[i] = FormatRange(f.Range)
		case "ecosystem":
			out[i] = string(f.Ecosystem)
		case "grammar":
			out[i] = f.Grammar
		case "scope":
			out[i] = string(f.Scope)
		case "rules":
			out[i] = FormatRules(f.Rules)
		case "source":
			out[i] = string(f.Source)
		case "reason":
			out[i] = FormatReasons(f.Reasons)
		}
	}
	return out
}

// FormatRange renders an affected line range; an open end means "to EOF".
func FormatRange(r model.LineRange) string {
	if r.End == 0 {
		return strconv.Itoa(r.Start) + "-EOF"
	}
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// FormatRules renders a rule list; an empty list suppresses all rules.
func FormatRules(rules []string) string {
	if len(rules) == 0 {
		return "(all)"
	}
	return strings.Join(rules, ",")
}

// FormatReasons joins the collected justification fragments.
func FormatReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "(no reason provided)"
	}
	return strings.Join(reasons, " ")
}
