package scanner

import (
	"reflect"
	"testing"

	"lintsweep/internal/model"
	"lintsweep/internal/registry"
)

func newScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := New(registry.New(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestScanEslintRuleLists(t *testing.T) {
	s := newScanner(t)
	cases := []struct {
		line    string
		grammar string
		rules   []string
	}{
		{"// eslint-disable-next-line no-use-before-define", "eslint-disable-next-line", []string{"no-use-before-define"}},
		{"/* eslint-disable no-unused-vars, semi */", "eslint-disable", []string{"no-unused-vars", "semi"}},
		{"// eslint-disable-line no-console", "eslint-disable-line", []string{"no-console"}},
		{"/* eslint-disable */", "eslint-disable", []string{}},
		{"// eslint-disable-next-line", "eslint-disable-next-line", []string{}},
	}
	for _, tc := range cases {
		matches, anomalies := s.Scan("a.js", []byte(tc.line+"\n"), model.EcosystemJsTs)
		if len(anomalies) != 0 {
			t.Fatalf("%q: unexpected anomalies %v", tc.line, anomalies)
		}
		if len(matches) != 1 {
			t.Fatalf("%q: expected 1 match, got %d", tc.line, len(matches))
		}
		m := matches[0]
		if m.Grammar.Name != tc.grammar {
			t.Fatalf("%q: grammar %q want %q", tc.line, m.Grammar.Name, tc.grammar)
		}
		if !reflect.DeepEqual(m.Rules, tc.rules) {
			t.Fatalf("%q: rules %v want %v", tc.line, m.Rules, tc.rules)
		}
	}
}

func TestScanKeywordPriority(t *testing.T) {
	// "eslint-disable" is a prefix of the longer keywords; each variant must
	// resolve to exactly its own grammar.
	s := newScanner(t)
	matches, _ := s.Scan("a.js", []byte("// eslint-disable-next-line semi\n"), model.EcosystemJsTs)
	if len(matches) != 1 || matches[0].Grammar.Name != "eslint-disable-next-line" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	matches, _ = s.Scan("a.js", []byte("// eslint-disable-line semi\n"), model.EcosystemJsTs)
	if len(matches) != 1 || matches[0].Grammar.Name != "eslint-disable-line" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestScanPylintForms(t *testing.T) {
	s := newScanner(t)
	src := "x = 1  # pylint: disable=unused-import\n" +
		"# pylint:disable=missing-docstring,invalid-name\n" +
		"# pylint: disable-next=too-many-branches\n" +
		"def f():\n" +
		"    pass  # noqa: E501\n" +
		"# noqa\n"
	matches, anomalies := s.Scan("a.py", []byte(src), model.EcosystemPython)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	wantRules := [][]string{
		{"unused-import"},
		{"missing-docstring", "invalid-name"},
		{"too-many-branches"},
		{"E501"},
		{},
	}
	if len(matches) != len(wantRules) {
		t.Fatalf("expected %d matches, got %d: %+v", len(wantRules), len(matches), matches)
	}
	for i, want := range wantRules {
		if !reflect.DeepEqual(matches[i].Rules, want) {
			t.Fatalf("match %d: rules %v want %v", i, matches[i].Rules, want)
		}
	}
	if matches[2].Grammar.Name != "pylint-disable-next" {
		t.Fatalf("expected disable-next grammar, got %q", matches[2].Grammar.Name)
	}
}

func TestScanRequiredSeparator(t *testing.T) {
	// Without pylint's "=" the trailing words are commentary, not rule ids.
	s := newScanner(t)
	matches, anomalies := s.Scan("a.py", []byte("# noqa should stay quiet here\n"), model.EcosystemPython)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if len(matches[0].Rules) != 0 {
		t.Fatalf("expected no rules, got %v", matches[0].Rules)
	}
	if len(matches[0].Reasons) != 1 || matches[0].Reasons[0] != "should stay quiet here" {
		t.Fatalf("unexpected reasons: %v", matches[0].Reasons)
	}
}

func TestScanMalformedRuleList(t *testing.T) {
	s := newScanner(t)
	matches, anomalies := s.Scan("a.py", []byte("x = 1  # pylint: disable=\n"), model.EcosystemPython)
	if len(matches) != 0 {
		t.Fatalf("malformed directive produced matches: %+v", matches)
	}
	if len(anomalies) != 1 || anomalies[0].Kind != model.AnomalyDanglingDirective {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}
	if anomalies[0].Line != 1 {
		t.Fatalf("anomaly line %d want 1", anomalies[0].Line)
	}
}

func TestScanIgnoresStringLiterals(t *testing.T) {
	s := newScanner(t)
	src := "const s = \"// eslint-disable\";\n" +
		"const t = '# not a comment';\n"
	matches, _ := s.Scan("a.js", []byte(src), model.EcosystemJsTs)
	if len(matches) != 0 {
		t.Fatalf("directive inside string literal matched: %+v", matches)
	}
	pysrc := "s = \"# noqa\"\n"
	matches, _ = s.Scan("a.py", []byte(pysrc), model.EcosystemPython)
	if len(matches) != 0 {
		t.Fatalf("python string literal matched: %+v", matches)
	}
}

func TestScanCommentAfterString(t *testing.T) {
	s := newScanner(t)
	src := "const url = \"http://x\"; // eslint-disable-line no-console\n"
	matches, _ := s.Scan("a.js", []byte(src), model.EcosystemJsTs)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %+v", matches)
	}
	if !reflect.DeepEqual(matches[0].Rules, []string{"no-console"}) {
		t.Fatalf("unexpected rules: %v", matches[0].Rules)
	}
}

func TestScanWordBoundary(t *testing.T) {
	s := newScanner(t)
	// "noqaify" must not match the noqa grammar.
	matches, _ := s.Scan("a.py", []byte("# run noqaify first\n"), model.EcosystemPython)
	if len(matches) != 0 {
		t.Fatalf("embedded keyword matched: %+v", matches)
	}
}

func TestScanTrailingReason(t *testing.T) {
	s := newScanner(t)
	matches, _ := s.Scan("a.js", []byte("// eslint-disable-next-line camelcase -- third party API shape\n"), model.EcosystemJsTs)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if !reflect.DeepEqual(m.Rules, []string{"camelcase"}) {
		t.Fatalf("unexpected rules: %v", m.Rules)
	}
	if len(m.Reasons) != 1 || m.Reasons[0] != "third party API shape" {
		t.Fatalf("unexpected reasons: %v", m.Reasons)
	}
}

func TestScanTsDirectiveReason(t *testing.T) {
	s := newScanner(t)
	matches, _ := s.Scan("a.ts", []byte("// @ts-ignore: upstream types are wrong\n"), model.EcosystemJsTs)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Grammar.Name != "ts-ignore" {
		t.Fatalf("unexpected grammar %q", matches[0].Grammar.Name)
	}
	if len(matches[0].Reasons) != 1 || matches[0].Reasons[0] != "upstream types are wrong" {
		t.Fatalf("unexpected reasons: %v", matches[0].Reasons)
	}
}

func Test前行コメントが理由になる(t *testing.T) {
	s := newScanner(t)
	src := "# upstream bug, see tracker\n" +
		"import legacy  # pylint: disable=unused-import\n"
	matches, _ := s.Scan("a.py", []byte(src), model.EcosystemPython)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if len(matches[0].Reasons) != 1 || matches[0].Reasons[0] != "upstream bug, see tracker" {
		t.Fatalf("unexpected reasons: %v", matches[0].Reasons)
	}
}

func Test継続コメントが理由に追記される(t *testing.T) {
	s := newScanner(t)
	src := "# pylint: disable=missing-docstring\n" +
		"# the module predates the docstring policy\n" +
		"# and will be rewritten\n" +
		"x = 1\n"
	matches, _ := s.Scan("a.py", []byte(src), model.EcosystemPython)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	want := []string{"the module predates the docstring policy", "and will be rewritten"}
	if !reflect.DeepEqual(matches[0].Reasons, want) {
		t.Fatalf("unexpected reasons: %v", matches[0].Reasons)
	}
}

func TestScanEnableMatch(t *testing.T) {
	s := newScanner(t)
	src := "/* eslint-disable no-console */\n" +
		"console.log(1);\n" +
		"/* eslint-enable no-console */\n"
	matches, _ := s.Scan("a.js", []byte(src), model.EcosystemJsTs)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Enable || !matches[1].Enable {
		t.Fatalf("enable flags wrong: %+v", matches)
	}
	if !reflect.DeepEqual(matches[1].Rules, []string{"no-console"}) {
		t.Fatalf("enable rules: %v", matches[1].Rules)
	}
}

func TestScanEmptyAndCRLF(t *testing.T) {
	s := newScanner(t)
	if matches, anomalies := s.Scan("a.py", nil, model.EcosystemPython); len(matches) != 0 || len(anomalies) != 0 {
		t.Fatalf("empty content produced output: %v %v", matches, anomalies)
	}
	matches, _ := s.Scan("a.py", []byte("x = 1  # noqa: E501\r\n"), model.EcosystemPython)
	if len(matches) != 1 || !reflect.DeepEqual(matches[0].Rules, []string{"E501"}) {
		t.Fatalf("CRLF line not handled: %+v", matches)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines([]byte("a\nb\n"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected lines: %v", got)
	}
	got = SplitLines([]byte("a\nb"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("no trailing newline: %v", got)
	}
}

func TestCustomGrammar(t *testing.T) {
	custom := []model.Grammar{{
		Name:        "flake8-noqa-file",
		Ecosystem:   model.EcosystemPython,
		Keyword:     "flake8: noqa",
		Scope:       model.ScopeRestOfFile,
		HasRuleList: true,
		RuleSep:     ":",
	}}
	s, err := New(registry.New(custom))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	matches, _ := s.Scan("a.py", []byte("# flake8: noqa: E501\n"), model.EcosystemPython)
	if len(matches) != 1 || matches[0].Grammar.Name != "flake8-noqa-file" {
		t.Fatalf("custom grammar did not win: %+v", matches)
	}
	if !reflect.DeepEqual(matches[0].Rules, []string{"E501"}) {
		t.Fatalf("unexpected rules: %v", matches[0].Rules)
	}
}
