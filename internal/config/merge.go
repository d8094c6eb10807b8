package config

import "strings"

// Merge helpers: later layers win whenever their pointer field is set, so
// an explicit zero ("strict: false", an empty list) still overrides.

func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Paths = pickStrings(out.Paths, layer.Paths)
		out.Excludes = pickStrings(out.Excludes, layer.Excludes)
		out.Ecosystems = pickStrings(out.Ecosystems, layer.Ecosystems)
		out.IgnoreFiles = pickStrings(out.IgnoreFiles, layer.IgnoreFiles)
		out.MaxFileBytes = pickInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.Jobs = pickInt(out.Jobs, layer.Jobs)
		out.Root = pickTrimmed(out.Root, layer.Root)
	}
	return out
}

func MergeReport(base ReportSettings, layers ...ReportConfig) ReportSettings {
	out := base
	for _, layer := range layers {
		out.Output = pickTrimmed(out.Output, layer.Output)
		out.Fields = pickTrimmed(out.Fields, layer.Fields)
		out.Color = pickTrimmed(out.Color, layer.Color)
		out.Strict = pickBool(out.Strict, layer.Strict)
		out.RequireReason = pickBool(out.RequireReason, layer.RequireReason)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// MergeGrammars concatenates grammar blocks across layers in order; the
// scanner gives earlier (more local) layers match priority.
func MergeGrammars(layers ...[]GrammarConfig) []GrammarConfig {
	var out []GrammarConfig
	for _, layer := range layers {
		out = append(out, layer...)
	}
	return out
}

func pickTrimmed(current string, layer *string) string {
	if layer != nil {
		current = *layer
	}
	return strings.TrimSpace(current)
}

func pickInt(current int, layer *int) int {
	if layer != nil {
		return *layer
	}
	return current
}

func pickBool(current bool, layer *bool) bool {
	if layer != nil {
		return *layer
	}
	return current
}

// pickStrings clones on every hop so no layer aliases another's slice.
// A set-but-empty list stays empty rather than reverting to nil, because
// nil means "unset, fall back to defaults" further down.
func pickStrings(current []string, layer *[]string) []string {
	if layer == nil {
		if current == nil {
			return nil
		}
		out := make([]string, len(current))
		copy(out, current)
		return out
	}
	if len(*layer) == 0 {
		return []string{}
	}
	return cloneStrings(*layer)
}
