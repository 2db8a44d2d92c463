package engine

import (
	"errors"

	"codesync/internal/model"
)

// ErrUnknownLabel is returned by CommentsForLabel when no comment in the
// snapshot carries the requested label. A label can never exist with zero
// comments, so callers can rely on this to mean "never used".
var ErrUnknownLabel = errors.New("unknown label")

// Labels returns the sorted, distinct labels present in at least one
// comment. Invalid matches contribute nothing.
func (r *Result) Labels() []string {
	labels := make([]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		labels = append(labels, g.Label)
	}
	return labels
}

// CommentsForLabel returns the comments carrying label in encounter
// order, or ErrUnknownLabel.
func (r *Result) CommentsForLabel(label string) ([]model.Match, error) {
	for _, g := range r.Groups {
		if g.Label == label {
			return g.Comments, nil
		}
	}
	return nil, ErrUnknownLabel
}
