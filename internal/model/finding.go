package model

import (
	"strconv"
	"strings"
)

// Ecosystem は対象ファイルの抑制コメント体系を表します。
type Ecosystem string

const (
	EcosystemPython Ecosystem = "python"
	EcosystemJsTs   Ecosystem = "jsts"
)

// ScopeKind は 1 件のディレクティブが抑制する範囲の種別です。
type ScopeKind string

const (
	ScopeCurrentLine ScopeKind = "current-line"
	ScopeNextLine    ScopeKind = "next-line"
	ScopeRestOfFile  ScopeKind = "rest-of-file"
	ScopeWholeFile   ScopeKind = "whole-file"
)

// SourceKind は Finding の出所（インラインか ignore リストか）を表します。
type SourceKind string

const (
	SourceInline     SourceKind = "inline"
	SourceIgnoreList SourceKind = "ignore-list"
)

// Grammar は抑制コメントの書式 1 つ分の定義です。純粋なデータであり、
// 新しいエコシステムや書式の追加は Scanner の制御フローに影響しません。
type Grammar struct {
	Name      string    `json:"name"`
	Ecosystem Ecosystem `json:"ecosystem"`
	// Keyword はトリガーとなるリテラル文字列（例: "eslint-disable-next-line"）。
	// Python 系の ":" 前後の空白は Scanner 側で吸収されます。
	Keyword string    `json:"keyword"`
	Scope   ScopeKind `json:"scope"`
	// HasRuleList が真のとき、キーワード直後のカンマ区切り識別子列を
	// ルール ID として取り出します。
	HasRuleList bool `json:"has_rule_list,omitempty"`
	// RuleSep はルール一覧の前に必須の区切り文字（pylint の "="、noqa の ":"）。
	// 空ならキーワード直後の裸の識別子列をルールとして扱います。
	RuleSep string `json:"rule_sep,omitempty"`
	// EnableKeyword は RestOfFile を打ち消す再有効化キーワード（任意）。
	EnableKeyword string `json:"enable_keyword,omitempty"`
}

// RawMatch はディレクティブ 1 件の生の検出結果です。
type RawMatch struct {
	File    string
	Line    int // 1-based
	Grammar Grammar
	// Rules は空のとき「全ルール抑制」を意味します（nil にはしません）。
	Rules   []string
	Text    string
	Reasons []string
	// Enable はこのマッチが再有効化ディレクティブであることを示します。
	// Finding にはならず、RestOfFile の範囲確定にのみ使われます。
	Enable bool
}

// LineRange は Finding の影響行範囲。End == 0 は「ファイル末尾まで」を表します。
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Finding は分類済みの抑制 1 件。Report に載る最小単位です。
type Finding struct {
	File      string     `json:"file"`
	Range     LineRange  `json:"range"`
	Rules     []string   `json:"rules"`
	Grammar   string     `json:"grammar"`
	Scope     ScopeKind  `json:"scope"`
	Source    SourceKind `json:"source"`
	Ecosystem Ecosystem  `json:"ecosystem,omitempty"`
	Reasons   []string   `json:"reasons,omitempty"`
}

// Key は重複排除用の同一性キーを返します。
// (file, range start, rules, grammar) が一致する Finding は 1 件に畳まれます。
func (f Finding) Key() string {
	return f.File + "\x00" + strconv.Itoa(f.Range.Start) + "\x00" + strings.Join(f.Rules, ",") + "\x00" + f.Grammar
}

// AnomalyKind は検出された異常の種別です。
type AnomalyKind string

const (
	AnomalyDanglingDirective AnomalyKind = "dangling-directive"
	AnomalyScanFailure       AnomalyKind = "scan-failure"
	AnomalyIgnoreListFailure AnomalyKind = "ignore-list-failure"
)

// Anomaly は Finding にはならない異常（宙吊りディレクティブ、読み取り失敗など）。
// Report と並走して呼び出し側へ渡され、exit status の判断材料になります。
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	File    string      `json:"file"`
	Line    int         `json:"line,omitempty"`
	Message string      `json:"message"`
}

// IgnorePattern は ignore リストファイル中の 1 パターンです。
type IgnorePattern struct {
	Glob    string
	Negated bool
	// DirOnly は末尾 "/" 付きパターン（ディレクトリ限定）を表します。
	DirOnly bool
	// Anchored は先頭 "/" 付きパターン（ルート起点限定）を表します。
	Anchored bool
	File     string
	Line     int // 1-based
	Reason   string
}
