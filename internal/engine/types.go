package engine

import (
	"lintsweep/internal/model"
)

// Options は 1 回の走査の実行オプション。
type Options struct {
	Root           string
	Paths          []string
	Excludes       []string
	Ecosystems     []model.Ecosystem // 空なら全エコシステム
	IgnoreFiles    []string          // ignore リストファイルのベース名
	CustomGrammars []model.Grammar
	MaxFileBytes   int
	Jobs           int
	Progress       bool
}

// DefaultIgnoreFiles は走査中に拾う ignore リストファイルのベース名。
var DefaultIgnoreFiles = []string{".eslintignore"}

// defaultExcludedDirs はデフォルトで立ち入らないディレクトリ。
// 依存物やキャッシュであり、抑制の監査対象にはなりません。
var defaultExcludedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".pytest_cache": true,
}

// sourceFile は走査対象 1 ファイル。
type sourceFile struct {
	rel string
	eco model.Ecosystem
}

// ignoreFile は発見済みの ignore リストファイル。
type ignoreFile struct {
	rel string
	dir string // 走査ルートからの相対ディレクトリ（"." はルート）
}
