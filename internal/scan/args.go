package scan

import (
	"strconv"

	"codesync/internal/model"
)

// classify parses the captured argument list (including its delimiters)
// and produces exactly one classified match. Parsing never partially
// succeeds: any grammar violation yields an invalid match carrying the
// raw text.
func classify(loc model.Location, raw string) model.Match {
	label, count, reason := parseArgs(raw)
	if reason != "" {
		return model.Match{
			Loc:    loc,
			Raw:    raw,
			Kind:   model.MatchKindInvalid,
			Reason: reason,
		}
	}
	return model.Match{
		Loc:   loc,
		Raw:   raw,
		Kind:  model.MatchKindComment,
		Label: label,
		Count: count,
	}
}

// parseArgs consumes "(" label [ "," count ] ")". The label is a maximal
// run of [A-Za-z0-9_-]; the count a maximal run of digits with value >= 1.
// An omitted count defaults to DefaultCount.
func parseArgs(raw string) (label string, count int, reason model.InvalidReason) {
	// The tokenizer guarantees raw starts with '(' and ends with ')'.
	s := raw[1 : len(raw)-1]

	i := skipSpace(s, 0)
	start := i
	for i < len(s) && isLabelChar(s[i]) {
		i++
	}
	if i == start {
		return "", 0, model.ReasonEmptyLabel
	}
	label = s[start:i]

	i = skipSpace(s, i)
	if i == len(s) {
		return label, DefaultCount, ""
	}
	if s[i] != ',' {
		return "", 0, model.ReasonTrailing
	}

	i = skipSpace(s, i+1)
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return "", 0, model.ReasonBadCount
	}
	n, err := strconv.Atoi(s[digits:i])
	if err != nil || n < 1 {
		return "", 0, model.ReasonBadCount
	}

	if skipSpace(s, i) != len(s) {
		return "", 0, model.ReasonTrailing
	}
	return label, n, ""
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isLabelChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	}
	return false
}
