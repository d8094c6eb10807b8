// Package registry holds the built-in suppression grammars per ecosystem.
// Grammars are pure data: adding one never changes scanner control flow.
package registry

import "lintsweep/internal/model"

// Built-in grammars, most-specific keyword first. Order matters because
// several keywords are substrings of longer ones ("eslint-disable" is a
// prefix of both "-next-line" and "-line" forms); the scanner stops at
// the first grammar that matches a line.
var builtin = map[model.Ecosystem][]model.Grammar{
	model.EcosystemJsTs: {
		{Name: "eslint-disable-next-line", Ecosystem: model.EcosystemJsTs, Keyword: "eslint-disable-next-line", Scope: model.ScopeNextLine, HasRuleList: true},
		{Name: "eslint-disable-line", Ecosystem: model.EcosystemJsTs, Keyword: "eslint-disable-line", Scope: model.ScopeCurrentLine, HasRuleList: true},
		{Name: "eslint-disable", Ecosystem: model.EcosystemJsTs, Keyword: "eslint-disable", Scope: model.ScopeRestOfFile, HasRuleList: true, EnableKeyword: "eslint-enable"},
		{Name: "ts-expect-error", Ecosystem: model.EcosystemJsTs, Keyword: "@ts-expect-error", Scope: model.ScopeNextLine},
		{Name: "ts-ignore", Ecosystem: model.EcosystemJsTs, Keyword: "@ts-ignore", Scope: model.ScopeNextLine},
		{Name: "ts-nocheck", Ecosystem: model.EcosystemJsTs, Keyword: "@ts-nocheck", Scope: model.ScopeRestOfFile},
	},
	model.EcosystemPython: {
		{Name: "pylint-disable-next", Ecosystem: model.EcosystemPython, Keyword: "pylint: disable-next", Scope: model.ScopeNextLine, HasRuleList: true, RuleSep: "="},
		{Name: "pylint-disable", Ecosystem: model.EcosystemPython, Keyword: "pylint: disable", Scope: model.ScopeCurrentLine, HasRuleList: true, RuleSep: "="},
		{Name: "pylint-skip-file", Ecosystem: model.EcosystemPython, Keyword: "pylint: skip-file", Scope: model.ScopeRestOfFile},
		{Name: "noqa", Ecosystem: model.EcosystemPython, Keyword: "noqa", Scope: model.ScopeCurrentLine, HasRuleList: true, RuleSep: ":"},
	},
}

// Registry resolves the ordered grammar list for an ecosystem.
type Registry struct {
	extra map[model.Ecosystem][]model.Grammar
}

// New builds a registry from the built-in grammars plus any custom ones.
// Custom grammars are tried before the built-ins of the same ecosystem so
// a more specific user keyword can shadow a built-in prefix.
func New(custom []model.Grammar) *Registry {
	r := &Registry{}
	if len(custom) == 0 {
		return r
	}
	r.extra = make(map[model.Ecosystem][]model.Grammar)
	for _, g := range custom {
		r.extra[g.Ecosystem] = append(r.extra[g.Ecosystem], g)
	}
	return r
}

// GrammarsFor returns the grammars to try for eco, in match priority order.
// The returned slice is owned by the caller.
func (r *Registry) GrammarsFor(eco model.Ecosystem) []model.Grammar {
	base := builtin[eco]
	extra := r.extra[eco]
	out := make([]model.Grammar, 0, len(base)+len(extra))
	out = append(out, extra...)
	out = append(out, base...)
	return out
}

// Ecosystems lists every ecosystem the registry knows grammars for.
func (r *Registry) Ecosystems() []model.Ecosystem {
	seen := map[model.Ecosystem]bool{}
	var out []model.Ecosystem
	for _, eco := range []model.Ecosystem{model.EcosystemPython, model.EcosystemJsTs} {
		seen[eco] = true
		out = append(out, eco)
	}
	for eco := range r.extra {
		if !seen[eco] {
			out = append(out, eco)
		}
	}
	return out
}
