package output

import (
	"fmt"
	"io"
	"strings"

	"codesync/internal/engine"
)

// WriteMarkdownTable renders issues as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, issues []engine.Issue) error {
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(issueHeaders, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(issueHeaders))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, issue := range issues {
		row := issueRow(issue)
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
