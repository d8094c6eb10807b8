package config

import (
	"lintsweep/internal/engine"
	"lintsweep/internal/model"
)

// ScanConfig is one layer of scan settings. Pointer fields distinguish
// "not set in this layer" from an explicit zero value.
type ScanConfig struct {
	Paths        *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes     *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	Ecosystems   *[]string `yaml:"ecosystems" toml:"ecosystems" json:"ecosystems"`
	IgnoreFiles  *[]string `yaml:"ignore_files" toml:"ignore_files" json:"ignore_files"`
	MaxFileBytes *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Jobs         *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Root         *string   `yaml:"root" toml:"root" json:"root"`
}

// GrammarConfig declares one custom directive grammar.
type GrammarConfig struct {
	Name      string `yaml:"name" toml:"name" json:"name"`
	Ecosystem string `yaml:"ecosystem" toml:"ecosystem" json:"ecosystem"`
	Keyword   string `yaml:"keyword" toml:"keyword" json:"keyword"`
	Scope     string `yaml:"scope" toml:"scope" json:"scope"`
	RuleList  bool   `yaml:"rule_list" toml:"rule_list" json:"rule_list"`
	RuleSep   string `yaml:"rule_sep" toml:"rule_sep" json:"rule_sep"`
	Enable    string `yaml:"enable_keyword" toml:"enable_keyword" json:"enable_keyword"`
}

// ReportConfig is one layer of output settings.
type ReportConfig struct {
	Output        *string `yaml:"output" toml:"output" json:"output"`
	Fields        *string `yaml:"fields" toml:"fields" json:"fields"`
	Color         *string `yaml:"color" toml:"color" json:"color"`
	Strict        *bool   `yaml:"strict" toml:"strict" json:"strict"`
	RequireReason *bool   `yaml:"require_reason" toml:"require_reason" json:"require_reason"`
}

// Config is a full configuration layer (one file, or the environment).
type Config struct {
	Scan     ScanConfig      `yaml:"scan" toml:"scan" json:"scan"`
	Report   ReportConfig    `yaml:"report" toml:"report" json:"report"`
	Grammars []GrammarConfig `yaml:"grammar" toml:"grammar" json:"grammar"`
}

// ScanSettings is the merged, concrete form of the scan layers.
type ScanSettings struct {
	Paths        []string
	Excludes     []string
	Ecosystems   []string
	IgnoreFiles  []string
	MaxFileBytes int
	Jobs         int
	Root         string
}

// ReportSettings is the merged, concrete form of the report layers.
type ReportSettings struct {
	Output        string
	Fields        string
	Color         string
	Strict        bool
	RequireReason bool
}

// ApplyToOptions copies merged scan settings onto engine options.
func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.IgnoreFiles = cloneStrings(s.IgnoreFiles)
	opts.MaxFileBytes = s.MaxFileBytes
	if s.Jobs > 0 {
		opts.Jobs = s.Jobs
	}
	if s.Root != "" {
		opts.Root = s.Root
	}
}

// Grammar converts a config block into the model form. Scope strings use
// the same names the report prints.
func (g GrammarConfig) Grammar(eco model.Ecosystem) model.Grammar {
	return model.Grammar{
		Name:          g.Name,
		Ecosystem:     eco,
		Keyword:       g.Keyword,
		Scope:         model.ScopeKind(g.Scope),
		HasRuleList:   g.RuleList,
		RuleSep:       g.RuleSep,
		EnableKeyword: g.Enable,
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
