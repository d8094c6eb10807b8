package resolve

import (
	"reflect"
	"testing"

	"lintsweep/internal/model"
)

var (
	nextLine = model.Grammar{Name: "eslint-disable-next-line", Ecosystem: model.EcosystemJsTs, Scope: model.ScopeNextLine, HasRuleList: true}
	curLine  = model.Grammar{Name: "eslint-disable-line", Ecosystem: model.EcosystemJsTs, Scope: model.ScopeCurrentLine, HasRuleList: true}
	restFile = model.Grammar{Name: "eslint-disable", Ecosystem: model.EcosystemJsTs, Scope: model.ScopeRestOfFile, HasRuleList: true, EnableKeyword: "eslint-enable"}
	nocheck  = model.Grammar{Name: "ts-nocheck", Ecosystem: model.EcosystemJsTs, Scope: model.ScopeRestOfFile}
)

func TestFileCurrentAndNextLine(t *testing.T) {
	matches := []model.RawMatch{
		{File: "a.js", Line: 3, Grammar: curLine, Rules: []string{"semi"}},
		{File: "a.js", Line: 10, Grammar: nextLine, Rules: []string{"no-use-before-define"}},
	}
	findings, anomalies := File(matches, 20)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Range != (model.LineRange{Start: 3, End: 3}) {
		t.Fatalf("current-line range: %+v", findings[0].Range)
	}
	if findings[1].Range != (model.LineRange{Start: 11, End: 11}) {
		t.Fatalf("next-line range: %+v", findings[1].Range)
	}
	if findings[1].Scope != model.ScopeNextLine || findings[1].Source != model.SourceInline {
		t.Fatalf("unexpected finding metadata: %+v", findings[1])
	}
}

func Test最終行のNextLineは宙に浮く(t *testing.T) {
	matches := []model.RawMatch{{File: "a.js", Line: 5, Grammar: nextLine}}
	findings, anomalies := File(matches, 5)
	if len(findings) != 0 {
		t.Fatalf("dangling directive produced findings: %+v", findings)
	}
	if len(anomalies) != 1 || anomalies[0].Kind != model.AnomalyDanglingDirective {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}
	if anomalies[0].Line != 5 {
		t.Fatalf("anomaly line %d want 5", anomalies[0].Line)
	}
}

func TestFileRestOfFileRunsToEOF(t *testing.T) {
	matches := []model.RawMatch{{File: "a.ts", Line: 1, Grammar: nocheck}}
	findings, _ := File(matches, 40)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Range != (model.LineRange{Start: 1, End: 40}) {
		t.Fatalf("unexpected range: %+v", findings[0].Range)
	}
	if !reflect.DeepEqual(findings[0].Rules, []string{}) {
		t.Fatalf("nil rules not normalised: %#v", findings[0].Rules)
	}
}

func TestFileEnablePairing(t *testing.T) {
	matches := []model.RawMatch{
		{File: "a.js", Line: 2, Grammar: restFile, Rules: []string{"no-console"}},
		{File: "a.js", Line: 9, Grammar: restFile, Rules: []string{"no-console"}, Enable: true},
	}
	findings, _ := File(matches, 30)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Range != (model.LineRange{Start: 2, End: 9}) {
		t.Fatalf("unexpected range: %+v", findings[0].Range)
	}
}

func TestFileEnableMustCoverRules(t *testing.T) {
	matches := []model.RawMatch{
		{File: "a.js", Line: 2, Grammar: restFile, Rules: []string{"no-console", "semi"}},
		{File: "a.js", Line: 5, Grammar: restFile, Rules: []string{"semi"}, Enable: true},
		{File: "a.js", Line: 8, Grammar: restFile, Rules: []string{"semi", "no-console"}, Enable: true},
	}
	findings, _ := File(matches, 30)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	// The partial enable on line 5 does not close it; line 8 does.
	if findings[0].Range != (model.LineRange{Start: 2, End: 8}) {
		t.Fatalf("unexpected range: %+v", findings[0].Range)
	}
}

func TestFileEnableAllClosesAny(t *testing.T) {
	matches := []model.RawMatch{
		{File: "a.js", Line: 1, Grammar: restFile},
		{File: "a.js", Line: 4, Grammar: restFile, Enable: true},
	}
	findings, _ := File(matches, 30)
	if len(findings) != 1 || findings[0].Range != (model.LineRange{Start: 1, End: 4}) {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestFileDisableAllNotClosedByPartialEnable(t *testing.T) {
	matches := []model.RawMatch{
		{File: "a.js", Line: 1, Grammar: restFile},
		{File: "a.js", Line: 4, Grammar: restFile, Rules: []string{"semi"}, Enable: true},
	}
	findings, _ := File(matches, 30)
	if len(findings) != 1 || findings[0].Range != (model.LineRange{Start: 1, End: 30}) {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestFileEnableAloneNoFinding(t *testing.T) {
	matches := []model.RawMatch{{File: "a.js", Line: 7, Grammar: restFile, Enable: true}}
	findings, anomalies := File(matches, 30)
	if len(findings) != 0 || len(anomalies) != 0 {
		t.Fatalf("lone enable produced output: %v %v", findings, anomalies)
	}
}
