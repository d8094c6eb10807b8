// Package scanner turns file content into raw suppression-directive matches.
// Detection is line based: only directives written on a single physical line
// are recognised. Block comments that span lines are a documented limitation.
package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"lintsweep/internal/model"
	"lintsweep/internal/registry"
)

// matcher pairs a grammar with its compiled keyword patterns.
type matcher struct {
	grammar  model.Grammar
	re       *regexp.Regexp
	enableRe *regexp.Regexp
}

// Scanner matches registry grammars against file lines. It is immutable
// after New and safe for concurrent use across files.
type Scanner struct {
	matchers map[model.Ecosystem][]matcher
}

var ruleTokenRe = regexp.MustCompile(`^[A-Za-z0-9@][A-Za-z0-9@_./-]*`)

// New compiles every grammar of the registry. A custom grammar whose
// keyword cannot be compiled is reported as an error up front rather than
// silently skipped during the scan.
func New(reg *registry.Registry) (*Scanner, error) {
	s := &Scanner{matchers: make(map[model.Ecosystem][]matcher)}
	for _, eco := range reg.Ecosystems() {
		for _, g := range reg.GrammarsFor(eco) {
			m := matcher{grammar: g}
			re, err := compileKeyword(g.Keyword)
			if err != nil {
				return nil, fmt.Errorf("grammar %s: %w", g.Name, err)
			}
			m.re = re
			if g.EnableKeyword != "" {
				en, err := compileKeyword(g.EnableKeyword)
				if err != nil {
					return nil, fmt.Errorf("grammar %s: %w", g.Name, err)
				}
				m.enableRe = en
			}
			s.matchers[eco] = append(s.matchers[eco], m)
		}
	}
	return s, nil
}

// compileKeyword builds a pattern from the literal keyword, tolerating
// flexible whitespace around spaces and colons ("pylint: disable" also
// matches "pylint:disable" and "pylint : disable").
func compileKeyword(keyword string) (*regexp.Regexp, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("empty keyword")
	}
	var b strings.Builder
	for _, r := range keyword {
		switch r {
		case ' ':
			b.WriteString(`\s*`)
		case ':':
			b.WriteString(`\s*:\s*`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.Compile(b.String())
}

// Scan matches every grammar of eco against each line of content and
// returns the raw matches in line order. A line matches at most one
// grammar (first match in registry priority order wins). Malformed
// rule lists are surfaced as anomalies, never as findings.
func (s *Scanner) Scan(file string, content []byte, eco model.Ecosystem) ([]model.RawMatch, []model.Anomaly) {
	lines := SplitLines(content)
	style, ok := styleFor(eco)
	if !ok {
		return nil, nil
	}
	matchers := s.matchers[eco]

	var out []model.RawMatch
	var anomalies []model.Anomaly
	prevComment := ""
	lastMatch := -1 // index into out of the directive whose reason may continue below

	for i, line := range lines {
		n := i + 1
		span, found := commentSpan(line, style)
		if !found {
			prevComment = ""
			lastMatch = -1
			continue
		}
		ctext := line[span.start:span.end]
		matched := false

		for _, m := range matchers {
			if m.enableRe != nil {
				if loc := findKeyword(m.enableRe, ctext); loc != nil {
					rules, _, _ := parseRuleList(ctext[loc[1]:], m.grammar)
					out = append(out, model.RawMatch{
						File:    file,
						Line:    n,
						Grammar: m.grammar,
						Rules:   rules,
						Text:    strings.TrimSpace(line),
						Enable:  true,
					})
					matched = true
					lastMatch = -1
					break
				}
			}
			loc := findKeyword(m.re, ctext)
			if loc == nil {
				continue
			}
			rules, reason, malformed := parseRuleList(ctext[loc[1]:], m.grammar)
			if malformed {
				anomalies = append(anomalies, model.Anomaly{
					Kind:    model.AnomalyDanglingDirective,
					File:    file,
					Line:    n,
					Message: fmt.Sprintf("%s: rule list is malformed: %s", m.grammar.Name, strings.TrimSpace(ctext)),
				})
				matched = true
				lastMatch = -1
				break
			}
			var reasons []string
			if prevComment != "" {
				reasons = append(reasons, prevComment)
			}
			if reason != "" {
				reasons = append(reasons, reason)
			}
			out = append(out, model.RawMatch{
				File:    file,
				Line:    n,
				Grammar: m.grammar,
				Rules:   rules,
				Text:    strings.TrimSpace(line),
				Reasons: reasons,
			})
			matched = true
			if eco == model.EcosystemPython {
				lastMatch = len(out) - 1
			} else {
				lastMatch = -1
			}
			break
		}

		if !matched && span.commentOnly && lastMatch >= 0 {
			// Justification continuing on comment lines below the directive.
			if t := strings.TrimSpace(ctext); t != "" {
				out[lastMatch].Reasons = append(out[lastMatch].Reasons, t)
			}
		} else if !matched {
			lastMatch = -1
		}

		if !matched && span.commentOnly {
			prevComment = strings.TrimSpace(ctext)
		} else {
			prevComment = ""
		}
	}
	return out, anomalies
}

// findKeyword returns the first occurrence of re in text whose boundaries
// do not sit inside a longer identifier. RE2 has no lookaround, so the
// boundary check happens here.
func findKeyword(re *regexp.Regexp, text string) []int {
	offset := 0
	for offset <= len(text) {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil {
			return nil
		}
		start, end := offset+loc[0], offset+loc[1]
		if boundaryOK(text, start, end) {
			return []int{start, end}
		}
		offset = start + 1
	}
	return nil
}

func boundaryOK(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && (isWordByte(text[end]) || text[end] == '-') {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// parseRuleList splits the text following a keyword into rule ids and a
// trailing free-text reason. A grammar may require a separator before its
// rule list ("=" for pylint, ":" for noqa); without it the trailing text is
// plain commentary, not rules. A separator followed by no parsable rule id
// is malformed. An empty rule list means "all rules".
func parseRuleList(rest string, g model.Grammar) (rules []string, reason string, malformed bool) {
	rules = []string{}
	rest = strings.TrimSpace(rest)
	if !g.HasRuleList {
		return rules, trimReason(rest), false
	}
	sep := false
	if g.RuleSep != "" {
		if !strings.HasPrefix(rest, g.RuleSep) {
			return rules, trimReason(rest), false
		}
		sep = true
		rest = strings.TrimSpace(rest[len(g.RuleSep):])
	} else if strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, ":") {
		sep = true
		rest = strings.TrimSpace(rest[1:])
	}
	for {
		tok := ruleTokenRe.FindString(rest)
		if tok == "" {
			break
		}
		rules = append(rules, tok)
		rest = strings.TrimSpace(rest[len(tok):])
		if strings.HasPrefix(rest, ",") {
			rest = strings.TrimSpace(rest[1:])
			continue
		}
		break
	}
	if sep && len(rules) == 0 {
		return nil, "", true
	}
	return rules, trimReason(rest), false
}

// trimReason normalises trailing justification text. The eslint "-- why"
// convention, a bare leading dash and a leading colon ("@ts-ignore: why")
// are all stripped.
func trimReason(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "--")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, ":")
	return strings.TrimSpace(s)
}

// SplitLines splits content into physical lines without the trailing
// newline of the file producing a phantom empty line.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	raw := strings.Split(string(content), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	return raw
}
