// Package report merges classified findings into the final ordered report.
package report

import (
	"sort"

	"lintsweep/internal/model"
)

// Report は 1 回の走査の出力全体です。
type Report struct {
	Findings   []model.Finding `json:"findings"`
	Total      int             `json:"total"`
	Anomalies  []model.Anomaly `json:"anomalies,omitempty"`
	ScannedNum int             `json:"scanned_files"`
	ElapsedMS  int64           `json:"elapsed_ms"`
}

// Aggregate merges finding streams, drops exact duplicates and orders the
// result ascending by file, then by affected start line, then by
// declaration order within the line. The ordering is stable so repeated
// runs over unchanged input are byte identical.
func Aggregate(streams ...[]model.Finding) []model.Finding {
	var all []model.Finding
	for _, s := range streams {
		all = append(all, s...)
	}
	seen := make(map[string]bool, len(all))
	out := all[:0]
	for _, f := range all {
		k := f.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// SortAnomalies orders anomalies by file, line, then kind for stable output.
func SortAnomalies(anomalies []model.Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].File != anomalies[j].File {
			return anomalies[i].File < anomalies[j].File
		}
		if anomalies[i].Line != anomalies[j].Line {
			return anomalies[i].Line < anomalies[j].Line
		}
		return anomalies[i].Kind < anomalies[j].Kind
	})
}
