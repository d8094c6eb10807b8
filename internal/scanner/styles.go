package scanner

import (
	"strings"

	"lintsweep/internal/model"
)

// commentStyle describes how single-line comments and string literals are
// written in an ecosystem's source files.
type commentStyle struct {
	lineMarkers  []string
	blockStart   string
	blockEnd     string
	stringDelims string
}

var (
	stylePython = commentStyle{
		lineMarkers:  []string{"#"},
		stringDelims: `"'`,
	}
	styleJsTs = commentStyle{
		lineMarkers:  []string{"//"},
		blockStart:   "/*",
		blockEnd:     "*/",
		stringDelims: "\"'`",
	}
)

var ecosystemStyles = map[model.Ecosystem]commentStyle{
	model.EcosystemPython: stylePython,
	model.EcosystemJsTs:   styleJsTs,
}

func styleFor(eco model.Ecosystem) (commentStyle, bool) {
	cs, ok := ecosystemStyles[eco]
	return cs, ok
}

// span is the comment content of one physical line.
type span struct {
	start, end  int
	commentOnly bool
}

// commentSpan finds the first comment marker of the line that is not
// inside a string literal. This is a best-effort heuristic, not a
// tokenizer: it tracks quoting and backslash escapes on the single
// physical line only, so markers inside multi-line strings can still be
// taken for comments.
func commentSpan(line string, style commentStyle) (span, bool) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		if strings.IndexByte(style.stringDelims, c) >= 0 {
			quote = c
			continue
		}
		if style.blockStart != "" && strings.HasPrefix(line[i:], style.blockStart) {
			start := i + len(style.blockStart)
			end := len(line)
			if idx := strings.Index(line[start:], style.blockEnd); idx >= 0 {
				end = start + idx
			}
			return span{start: start, end: end, commentOnly: isBlank(line[:i])}, true
		}
		for _, marker := range style.lineMarkers {
			if strings.HasPrefix(line[i:], marker) {
				start := i + len(marker)
				return span{start: start, end: len(line), commentOnly: isBlank(line[:i])}, true
			}
		}
	}
	return span{}, false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
