package output

import (
	"fmt"
	"io"

	"codesync/internal/engine"
	"codesync/internal/termcolor"
	"codesync/internal/textutil"
)

// maxRawWidth bounds how much of a malformed annotation's raw text the
// report echoes back.
const maxRawWidth = 60

// WriteReport renders the human-readable check report: one diagnostic
// per issue followed by a summary line. Styling is suppressed when
// colors is false.
func WriteReport(w io.Writer, res *engine.Result, colors bool) error {
	errStyle := termcolor.ErrorStyle()
	locStyle := termcolor.LocationStyle()
	noteStyle := termcolor.NoteStyle()

	for _, issue := range res.Issues {
		head := termcolor.Apply(errStyle, "error", colors)
		if _, err := fmt.Fprintf(w, "%s: %s\n", head, issue.Message()); err != nil {
			return err
		}
		if issue.Kind == engine.IssueCountMismatch {
			for _, conflict := range issue.Conflicts {
				for _, loc := range conflict.Locations {
					line := fmt.Sprintf("  --> %s (count %d)", loc, conflict.Count)
					if _, err := fmt.Fprintln(w, termcolor.Apply(locStyle, line, colors)); err != nil {
						return err
					}
				}
			}
		} else {
			for _, loc := range issue.Locations {
				line := fmt.Sprintf("  --> %s", loc)
				if _, err := fmt.Fprintln(w, termcolor.Apply(locStyle, line, colors)); err != nil {
					return err
				}
			}
		}
		if issue.Raw != "" {
			raw := textutil.TruncateByWidth(issue.Raw, maxRawWidth, "…")
			if _, err := fmt.Fprintf(w, "  = found: %s\n", raw); err != nil {
				return err
			}
		}
		if note := issue.Note(); note != "" {
			line := fmt.Sprintf("  = note: %s", note)
			if _, err := fmt.Fprintln(w, termcolor.Apply(noteStyle, line, colors)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d %s, %d %s, %d %s scanned (%dms)",
		res.TotalComments, plural("comment", res.TotalComments),
		res.TotalLabels, plural("label", res.TotalLabels),
		res.FilesScanned, plural("file", res.FilesScanned),
		res.ElapsedMS)
	if res.Clean() {
		summary = "ok: " + summary
	} else {
		summary = fmt.Sprintf("%s: %d %s, %s",
			termcolor.Apply(errStyle, "failed", colors),
			len(res.Issues), plural("issue", len(res.Issues)), summary)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
