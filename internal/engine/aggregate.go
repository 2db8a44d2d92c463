package engine

import (
	"sort"

	"codesync/internal/model"
)

// snapshot は集約途中の状態。Run の内部でのみ生成され、検証後は
// Result に写し取られて破棄される。
type snapshot struct {
	groups  map[string][]model.Match
	order   []string // ラベルの初出順
	invalid []model.Match
}

// aggregate は正規順に並んだ分類済み Match 列をラベル別にまとめます。
// 重複排除はしません。同一ユニットが 2 回走査されることは 1 回の
// 実行中には起こりません。
func aggregate(matches []model.Match) snapshot {
	snap := snapshot{groups: make(map[string][]model.Match)}
	for _, m := range matches {
		if m.Invalid() {
			snap.invalid = append(snap.invalid, m)
			continue
		}
		if _, seen := snap.groups[m.Label]; !seen {
			snap.order = append(snap.order, m.Label)
		}
		snap.groups[m.Label] = append(snap.groups[m.Label], m)
	}
	return snap
}

// sortedGroups はラベルの辞書順で LabelGroup 列を返します。
// 各グループ内の Comment は発見順のままです。
func (s snapshot) sortedGroups() []LabelGroup {
	labels := make([]string, len(s.order))
	copy(labels, s.order)
	sort.Strings(labels)
	groups := make([]LabelGroup, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, LabelGroup{Label: label, Comments: s.groups[label]})
	}
	return groups
}
