// Package scan locates CODESYNC annotations inside arbitrary text and
// classifies each occurrence. It knows nothing about comment syntax:
// an annotation inside a string literal is treated like any other.
package scan

import (
	"bytes"
	"sort"

	"codesync/internal/model"
)

// Keyword is the default marker. Matching is exact and case-sensitive.
const Keyword = "CODESYNC"

// DefaultCount is the declared count applied when the count clause is
// omitted, as in CODESYNC(my-label).
const DefaultCount = 2

// Scanner walks one text unit left to right and yields one Match per
// keyword occurrence. A Scanner is single-use; create a new one to
// restart the scan.
type Scanner struct {
	file    string
	data    []byte
	keyword []byte
	offsets []int
	pos     int
}

// New returns a Scanner for the default keyword.
func New(file string, data []byte) *Scanner {
	return NewKeyword(file, data, Keyword)
}

// NewKeyword returns a Scanner for a custom marker keyword.
func NewKeyword(file string, data []byte, keyword string) *Scanner {
	return &Scanner{
		file:    file,
		data:    data,
		keyword: []byte(keyword),
		offsets: computeLineOffsets(data),
	}
}

// Next returns the next occurrence. The second result is false once the
// unit is exhausted.
func (s *Scanner) Next() (model.Match, bool) {
	if len(s.keyword) == 0 || s.pos >= len(s.data) {
		return model.Match{}, false
	}
	idx := bytes.Index(s.data[s.pos:], s.keyword)
	if idx < 0 {
		s.pos = len(s.data)
		return model.Match{}, false
	}
	start := s.pos + idx
	m, next := s.matchAt(start)
	s.pos = next
	return m, true
}

// matchAt captures the trailing argument list for the keyword occurrence
// at start and classifies it. It returns the match and the offset where
// scanning resumes, so occurrences never overlap.
func (s *Scanner) matchAt(start int) (model.Match, int) {
	line, col := lineColFromOffset(start, s.offsets)
	loc := model.Location{File: s.file, Line: line, Col: col, Offset: start}

	i := start + len(s.keyword)
	j := i
	for j < len(s.data) && isSpace(s.data[j]) {
		j++
	}
	if j >= len(s.data) || s.data[j] != '(' {
		// Keyword used with no argument list.
		return model.Match{
			Loc:    loc,
			Kind:   model.MatchKindInvalid,
			Reason: model.ReasonMissingArgs,
		}, i
	}
	end := bytes.IndexByte(s.data[j:], ')')
	if end < 0 {
		// No closing delimiter before end of unit.
		return model.Match{
			Loc:    loc,
			Raw:    string(s.data[j:]),
			Kind:   model.MatchKindInvalid,
			Reason: model.ReasonUnterminated,
		}, len(s.data)
	}
	stop := j + end + 1
	raw := string(s.data[j:stop])
	return classify(loc, raw), stop
}

// All runs a full scan of one unit with the default keyword.
func All(file string, data []byte) []model.Match {
	return AllKeyword(file, data, Keyword)
}

// AllKeyword runs a full scan of one unit with a custom keyword.
func AllKeyword(file string, data []byte, keyword string) []model.Match {
	sc := NewKeyword(file, data, keyword)
	var out []model.Match
	for {
		m, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func lineColFromOffset(offset int, lineOffsets []int) (line, col int) {
	idx := sort.Search(len(lineOffsets), func(i int) bool { return lineOffsets[i] > offset })
	if idx == 0 {
		return 1, offset + 1
	}
	lineStart := lineOffsets[idx-1]
	return idx, offset - lineStart + 1
}

func computeLineOffsets(data []byte) []int {
	offsets := make([]int, 0, bytes.Count(data, []byte{'\n'})+2)
	offsets = append(offsets, 0)
	for i, b := range data {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	if offsets[len(offsets)-1] != len(data) {
		offsets = append(offsets, len(data))
	}
	return offsets
}
