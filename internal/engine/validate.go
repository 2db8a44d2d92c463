package engine

import (
	"sort"

	"codesync/internal/model"
)

// validateSnapshot は集約結果を検証して Issue 列を作ります。順序は
// 決定的です: まず InvalidMatch を位置順に、続いて各ラベルを辞書順に。
//
// ラベル内で宣言 count が食い違う場合は count_mismatch のみを報告し、
// 実出現数との比較はしません。「本来の count」が定まらないためです。
func validateSnapshot(snap snapshot) []Issue {
	var issues []Issue

	for _, m := range snap.invalid {
		issues = append(issues, Issue{
			Kind:      IssueMalformed,
			Locations: []model.Location{m.Loc},
			Raw:       m.Raw,
			Reason:    m.Reason,
		})
	}

	labels := make([]string, len(snap.order))
	copy(labels, snap.order)
	sort.Strings(labels)
	for _, label := range labels {
		group := LabelGroup{Label: label, Comments: snap.groups[label]}
		if issue, ok := validateGroup(group); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// validateGroup は 1 ラベル分の検査。デフォルト count (2) の単独出現も
// 免除されず wrong_occurrence_count になります。
func validateGroup(group LabelGroup) (Issue, bool) {
	counts := group.DistinctCounts()
	switch {
	case len(counts) > 1:
		conflicts := make([]CountLocations, 0, len(counts))
		for _, count := range counts {
			var locs []model.Location
			for _, c := range group.Comments {
				if c.Count == count {
					locs = append(locs, c.Loc)
				}
			}
			conflicts = append(conflicts, CountLocations{Count: count, Locations: locs})
		}
		return Issue{
			Kind:      IssueCountMismatch,
			Label:     group.Label,
			Conflicts: conflicts,
			Locations: groupLocations(group),
		}, true
	case len(counts) == 1 && counts[0] != group.ActualCount():
		return Issue{
			Kind:      IssueWrongCount,
			Label:     group.Label,
			Declared:  counts[0],
			Actual:    group.ActualCount(),
			Locations: groupLocations(group),
		}, true
	}
	return Issue{}, false
}

func groupLocations(group LabelGroup) []model.Location {
	locs := make([]model.Location, 0, len(group.Comments))
	for _, c := range group.Comments {
		locs = append(locs, c.Loc)
	}
	return locs
}
