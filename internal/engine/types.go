package engine

import (
	"fmt"
	"sort"

	"codesync/internal/model"
)

// Options は 1 回の検査の実行オプション
type Options struct {
	// Tag はマーカーキーワード。空なら CODESYNC。
	Tag string
	// RepoDir は走査ルート。
	RepoDir string
	// Paths / Excludes は git pathspec 互換の絞り込み。
	Paths          []string
	Excludes       []string
	ExcludeTypical bool
	// MaxFileBytes を超えるファイルは走査対象外（0 は無制限）。
	MaxFileBytes int
	Jobs         int
	Progress     bool
}

// ScanError はファイル 1 件の読み取り失敗を表す。検査は中断しない。
type ScanError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// LabelGroup は同一ラベルを持つ全 Comment を発見順に保持する
type LabelGroup struct {
	Label    string        `json:"label"`
	Comments []model.Match `json:"comments"`
}

// ActualCount はグループ内の Comment 数を返します。
func (g LabelGroup) ActualCount() int { return len(g.Comments) }

// DistinctCounts はグループ内で宣言された count の相異なる値を
// 昇順で返します。
func (g LabelGroup) DistinctCounts() []int {
	seen := map[int]struct{}{}
	var counts []int
	for _, c := range g.Comments {
		if _, ok := seen[c.Count]; ok {
			continue
		}
		seen[c.Count] = struct{}{}
		counts = append(counts, c.Count)
	}
	sort.Ints(counts)
	return counts
}

// IssueKind は検証結果の分類
type IssueKind string

const (
	IssueMalformed     IssueKind = "malformed"
	IssueCountMismatch IssueKind = "count_mismatch"
	IssueWrongCount    IssueKind = "wrong_occurrence_count"
)

// CountLocations は 1 つの宣言 count とそれを宣言した位置の組
type CountLocations struct {
	Count     int              `json:"count"`
	Locations []model.Location `json:"locations"`
}

// Issue は検証で見つかった不整合 1 件。制御フローの失敗ではなく
// 常にデータとして報告される。
type Issue struct {
	Kind  IssueKind `json:"kind"`
	Label string    `json:"label,omitempty"`
	// Declared / Actual は wrong_occurrence_count のときのみ。
	Declared int `json:"declared,omitempty"`
	Actual   int `json:"actual,omitempty"`
	// Conflicts は count_mismatch のときのみ。
	Conflicts []CountLocations `json:"conflicts,omitempty"`
	Locations []model.Location `json:"locations,omitempty"`
	// Raw / Reason は malformed のときのみ。
	Raw    string              `json:"raw,omitempty"`
	Reason model.InvalidReason `json:"reason,omitempty"`
}

// Message は診断メッセージ本文を返します。
func (i Issue) Message() string {
	switch i.Kind {
	case IssueCountMismatch:
		return fmt.Sprintf("all comments with label `%s` must have the same count", i.Label)
	case IssueWrongCount:
		return fmt.Sprintf("expected %d %s with label `%s`, found %d",
			i.Declared, pluralize("comment", i.Declared), i.Label, i.Actual)
	case IssueMalformed:
		if i.Reason == model.ReasonBadCount {
			return "invalid count"
		}
		return "malformed codesync comment"
	}
	return string(i.Kind)
}

// Note は診断に添える補足。無いときは空。
func (i Issue) Note() string {
	if i.Kind != IssueMalformed {
		return ""
	}
	if i.Reason == model.ReasonBadCount {
		return "second argument must be an integer"
	}
	return "comment must contain a label and an optional count, e.g., `CODESYNC(my-label)`, `CODESYNC(my-label, 3)`"
}

// Result は 1 回の検査の不変スナップショット
type Result struct {
	Groups        []LabelGroup `json:"groups"`
	Issues        []Issue      `json:"issues"`
	TotalComments int          `json:"total_comments"`
	TotalLabels   int          `json:"total_labels"`
	FilesScanned  int          `json:"files_scanned"`
	ElapsedMS     int64        `json:"elapsed_ms"`
	Errors        []ScanError  `json:"errors,omitempty"`
	ErrorCount    int          `json:"error_count"`
}

// Clean は Issue が 1 件も無いときに真。終了コードの判定に使う。
func (r *Result) Clean() bool { return len(r.Issues) == 0 }

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
