// Package resolve classifies raw directive matches into findings.
package resolve

import (
	"fmt"

	"lintsweep/internal/model"
)

// File resolves every raw match of one file against its total line count.
// Deterministic, no side effects: the same matches and line count always
// produce the same findings and anomalies.
//
// RestOfFile directives are closed by the next enable match of the same
// grammar whose rule list covers them (an enable with an empty rule list
// closes any pending disable); without one they run to the last line.
func File(matches []model.RawMatch, lineCount int) ([]model.Finding, []model.Anomaly) {
	var findings []model.Finding
	var anomalies []model.Anomaly

	for i, m := range matches {
		if m.Enable {
			continue
		}
		switch m.Grammar.Scope {
		case model.ScopeCurrentLine:
			findings = append(findings, finding(m, model.LineRange{Start: m.Line, End: m.Line}))
		case model.ScopeNextLine:
			if m.Line >= lineCount {
				anomalies = append(anomalies, model.Anomaly{
					Kind:    model.AnomalyDanglingDirective,
					File:    m.File,
					Line:    m.Line,
					Message: fmt.Sprintf("%s on the last line suppresses nothing", m.Grammar.Name),
				})
				continue
			}
			findings = append(findings, finding(m, model.LineRange{Start: m.Line + 1, End: m.Line + 1}))
		case model.ScopeRestOfFile:
			end := lineCount
			if m.Grammar.EnableKeyword != "" {
				if e := enableAfter(matches, i, m); e > 0 {
					end = e
				}
			}
			findings = append(findings, finding(m, model.LineRange{Start: m.Line, End: end}))
		default:
			anomalies = append(anomalies, model.Anomaly{
				Kind:    model.AnomalyDanglingDirective,
				File:    m.File,
				Line:    m.Line,
				Message: fmt.Sprintf("%s: unknown scope %q", m.Grammar.Name, m.Grammar.Scope),
			})
		}
	}
	return findings, anomalies
}

// enableAfter returns the line of the first enable match after matches[i]
// that re-enables what m disabled, or 0 when none exists.
func enableAfter(matches []model.RawMatch, i int, m model.RawMatch) int {
	for _, e := range matches[i+1:] {
		if !e.Enable || e.Grammar.Name != m.Grammar.Name {
			continue
		}
		if len(e.Rules) == 0 || covers(e.Rules, m.Rules) {
			return e.Line
		}
	}
	return 0
}

// covers reports whether enabling the rules in enable undoes a disable of
// the rules in disable. A disable of all rules (empty list) is only
// undone by enabling all rules.
func covers(enable, disable []string) bool {
	if len(disable) == 0 {
		return false
	}
	set := make(map[string]bool, len(enable))
	for _, r := range enable {
		set[r] = true
	}
	for _, r := range disable {
		if !set[r] {
			return false
		}
	}
	return true
}

func finding(m model.RawMatch, rng model.LineRange) model.Finding {
	rules := m.Rules
	if rules == nil {
		rules = []string{}
	}
	return model.Finding{
		File:      m.File,
		Range:     rng,
		Rules:     rules,
		Grammar:   m.Grammar.Name,
		Scope:     m.Grammar.Scope,
		Source:    model.SourceInline,
		Ecosystem: m.Grammar.Ecosystem,
		Reasons:   m.Reasons,
	}
}
