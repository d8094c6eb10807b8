// Package ignorefile parses linter ignore-list files (.eslintignore style)
// and resolves their gitignore-syntax patterns against the scanned file set.
package ignorefile

import (
	"path"
	"strings"

	ignore "github.com/Sriram-PR/go-ignore"

	"lintsweep/internal/model"
	"lintsweep/internal/scanner"
)

// Ruleset is the compiled form of one ignore-list file: pattern metadata
// for the report plus the matchers that decide and attribute ignores.
// Matching (wildcards, "**", "!" negation with last-match-wins, anchoring,
// directory-only patterns) is delegated to the gitignore matcher.
type Ruleset struct {
	patterns []model.IgnorePattern
	// matcher holds every pattern and yields the final decision.
	matcher *ignore.Matcher
	// single holds one matcher per non-negated pattern (nil for negated
	// entries) so a decision can be traced back to a pattern's reason.
	single []*ignore.Matcher
}

// Parse compiles ignore-list content. Blank lines and lines starting with
// "#" are skipped; a comment on the line directly above a pattern is kept
// as that pattern's reason.
func Parse(file string, content []byte) *Ruleset {
	rs := &Ruleset{matcher: ignore.New()}
	reason := ""
	for i, line := range scanner.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			reason = ""
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			reason = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			continue
		}
		p := model.IgnorePattern{File: file, Line: i + 1, Reason: reason}
		reason = ""
		body := trimmed
		if strings.HasPrefix(body, "!") {
			p.Negated = true
			body = strings.TrimSpace(body[1:])
		}
		if strings.HasSuffix(body, "/") {
			p.DirOnly = true
			body = strings.TrimSuffix(body, "/")
		}
		if strings.HasPrefix(body, "/") {
			p.Anchored = true
			body = strings.TrimPrefix(body, "/")
		}
		if body == "" {
			continue
		}
		p.Glob = body

		rs.matcher.AddPatterns("", []byte(trimmed+"\n"))
		var one *ignore.Matcher
		if !p.Negated {
			one = ignore.New()
			one.AddPatterns("", []byte(trimmed+"\n"))
		}
		rs.patterns = append(rs.patterns, p)
		rs.single = append(rs.single, one)
	}
	return rs
}

// Patterns returns the parsed pattern metadata in declaration order.
func (r *Ruleset) Patterns() []model.IgnorePattern {
	return r.patterns
}

// Match reports whether the slash-separated relative path is ignored.
func (r *Ruleset) Match(rel string) bool {
	if r == nil || len(r.patterns) == 0 {
		return false
	}
	return r.matcher.Match(rel, false)
}

// Resolve applies the ruleset to every scanned file path and returns one
// whole-file finding per ignored file.
func (r *Ruleset) Resolve(files []string) []model.Finding {
	if r == nil || len(r.patterns) == 0 {
		return nil
	}
	var out []model.Finding
	for _, file := range files {
		rel := path.Clean(strings.TrimPrefix(file, "./"))
		if !r.matcher.Match(rel, false) {
			continue
		}
		f := model.Finding{
			File:    file,
			Range:   model.LineRange{Start: 1, End: 0},
			Rules:   []string{},
			Grammar: "ignore-list-entry",
			Scope:   model.ScopeWholeFile,
			Source:  model.SourceIgnoreList,
		}
		if reason := r.reasonFor(rel); reason != "" {
			f.Reasons = []string{reason}
		}
		out = append(out, f)
	}
	return out
}

// reasonFor attributes an ignore decision to the last non-negated pattern
// that matches the path on its own.
func (r *Ruleset) reasonFor(rel string) string {
	for i := len(r.patterns) - 1; i >= 0; i-- {
		if r.single[i] == nil {
			continue
		}
		if r.single[i].Match(rel, false) {
			return r.patterns[i].Reason
		}
	}
	return ""
}
