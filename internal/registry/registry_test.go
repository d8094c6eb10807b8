package registry

import (
	"strings"
	"testing"

	"lintsweep/internal/model"
)

func TestGrammarsForOrdering(t *testing.T) {
	r := New(nil)
	grammars := r.GrammarsFor(model.EcosystemJsTs)
	if len(grammars) == 0 {
		t.Fatal("no jsts grammars")
	}
	// Longer keywords must come before their prefixes.
	pos := map[string]int{}
	for i, g := range grammars {
		pos[g.Name] = i
	}
	if pos["eslint-disable-next-line"] > pos["eslint-disable"] {
		t.Fatal("eslint-disable-next-line ordered after eslint-disable")
	}
	if pos["eslint-disable-line"] > pos["eslint-disable"] {
		t.Fatal("eslint-disable-line ordered after eslint-disable")
	}
}

func TestBuiltinKeywordPrefixesOrdered(t *testing.T) {
	for eco, grammars := range builtin {
		for i, g := range grammars {
			for _, later := range grammars[i+1:] {
				if strings.HasPrefix(g.Keyword, later.Keyword) && g.Keyword != later.Keyword {
					continue // longer first, as required
				}
				if strings.HasPrefix(later.Keyword, g.Keyword) && g.Keyword != later.Keyword {
					t.Fatalf("%s: %q ordered before its extension %q", eco, g.Keyword, later.Keyword)
				}
			}
		}
	}
}

func TestCustomBeforeBuiltin(t *testing.T) {
	custom := model.Grammar{Name: "my-noqa", Ecosystem: model.EcosystemPython, Keyword: "noqa-file", Scope: model.ScopeRestOfFile}
	r := New([]model.Grammar{custom})
	grammars := r.GrammarsFor(model.EcosystemPython)
	if grammars[0].Name != "my-noqa" {
		t.Fatalf("custom grammar not first: %+v", grammars[0])
	}
}

func TestEcosystemsIncludesCustom(t *testing.T) {
	custom := model.Grammar{Name: "x", Ecosystem: model.Ecosystem("ruby"), Keyword: "rubocop:disable", Scope: model.ScopeCurrentLine}
	r := New([]model.Grammar{custom})
	found := false
	for _, eco := range r.Ecosystems() {
		if eco == model.Ecosystem("ruby") {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom ecosystem missing: %v", r.Ecosystems())
	}
}
