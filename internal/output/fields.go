package output

import (
	"strconv"
	"strings"

	"codesync/internal/engine"
)

var issueHeaders = []string{"KIND", "LABEL", "MESSAGE", "LOCATIONS"}

// issueRow flattens one issue for the tabular writers. Locations are
// joined with a space so a row stays a single line.
func issueRow(issue engine.Issue) []string {
	locs := make([]string, 0, len(issue.Locations))
	for _, loc := range issue.Locations {
		locs = append(locs, loc.String())
	}
	return []string{
		string(issue.Kind),
		issue.Label,
		issue.Message(),
		strings.Join(locs, " "),
	}
}

var labelHeaders = []string{"LABEL", "COUNT", "ACTUAL", "LOCATIONS"}

func labelRow(group engine.LabelGroup) []string {
	counts := group.DistinctCounts()
	declared := make([]string, 0, len(counts))
	for _, c := range counts {
		declared = append(declared, strconv.Itoa(c))
	}
	locs := make([]string, 0, len(group.Comments))
	for _, c := range group.Comments {
		locs = append(locs, c.Loc.String())
	}
	return []string{
		group.Label,
		strings.Join(declared, "|"),
		strconv.Itoa(group.ActualCount()),
		strings.Join(locs, " "),
	}
}
