// Package opts holds shared parsing and validation for engine options,
// used by both the CLI flags and the config layers.
package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"lintsweep/internal/detect"
	"lintsweep/internal/engine"
	"lintsweep/internal/model"
)

const maxJobs = 64

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the baseline scan options for the given root.
func Defaults(root string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Root:         root,
		IgnoreFiles:  nil, // engine falls back to DefaultIgnoreFiles
		MaxFileBytes: 0,
		Jobs:         jobs,
	}
}

// NormalizeAndValidate canonicalises every list option and rejects values
// the engine cannot work with. Called once after all layers are merged.
func NormalizeAndValidate(o *engine.Options) error {
	if o.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1")
	}
	if o.Jobs > maxJobs {
		o.Jobs = maxJobs
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.IgnoreFiles = trimSlice(o.IgnoreFiles)
	for _, g := range o.CustomGrammars {
		if strings.TrimSpace(g.Name) == "" || strings.TrimSpace(g.Keyword) == "" {
			return fmt.Errorf("custom grammar needs both a name and a keyword")
		}
		switch g.Scope {
		case model.ScopeCurrentLine, model.ScopeNextLine, model.ScopeRestOfFile:
		default:
			return fmt.Errorf("custom grammar %s: invalid scope %q", g.Name, g.Scope)
		}
	}
	return nil
}

// ParseEcosystems converts user-supplied names into ecosystem tags.
func ParseEcosystems(names []string) ([]model.Ecosystem, error) {
	var out []model.Ecosystem
	for _, name := range SplitMulti(names) {
		eco, ok := detect.ParseEcosystem(name)
		if !ok {
			return nil, fmt.Errorf("unknown ecosystem: %s", name)
		}
		out = append(out, eco)
	}
	return out, nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "table":
		return "table", nil
	case "tsv", "json", "ndjson", "csv", "markdown", "md":
		if v == "md" {
			return "markdown", nil
		}
		return v, nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti turns repeated values (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
