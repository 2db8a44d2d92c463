package model

import "fmt"

// MatchKind は CODESYNC 出現 1 件の分類を表します。
type MatchKind string

const (
	// MatchKindComment は引数が正しく解析できた出現。
	MatchKindComment MatchKind = "comment"
	// MatchKindInvalid は引数文法に違反した出現。
	MatchKindInvalid MatchKind = "invalid"
)

// InvalidReason は InvalidMatch の原因分類です。
type InvalidReason string

const (
	ReasonMissingArgs  InvalidReason = "missing_args"
	ReasonUnterminated InvalidReason = "unterminated"
	ReasonEmptyLabel   InvalidReason = "empty_label"
	ReasonBadCount     InvalidReason = "bad_count"
	ReasonTrailing     InvalidReason = "trailing_garbage"
)

// Location は検出位置を 1 始まりの行・桁とバイトオフセットで表します。
// 生成後は変更されません。
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
	Offset int    `json:"offset"`
}

// String は file:line:col 形式で位置を返します。
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Less は (File, Line, Col) の辞書順比較です。マージ後の正規順を決めます。
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Col < o.Col
}

// Match はキーワード 1 出現を表します。スキャナが生成し分類した後は
// 変更されません。
type Match struct {
	Loc Location `json:"location"`
	// Raw はキーワード直後の引数リスト部分（括弧を含む）。
	// 引数リストが無い場合は空。
	Raw  string    `json:"raw,omitempty"`
	Kind MatchKind `json:"kind"`
	// Label と Count は Kind が comment のときのみ意味を持ちます。
	// Count は常に 1 以上（省略時は既定値が適用済み）。
	Label string `json:"label,omitempty"`
	Count int    `json:"count,omitempty"`
	// Reason は Kind が invalid のときのみ設定されます。
	Reason InvalidReason `json:"reason,omitempty"`
}

// Comment は解析に成功した出現かどうかを返します。
func (m Match) Comment() bool { return m.Kind == MatchKindComment }

// Invalid は文法違反の出現かどうかを返します。
func (m Match) Invalid() bool { return m.Kind == MatchKindInvalid }
