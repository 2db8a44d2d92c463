package output

import (
	"encoding/csv"
	"io"

	"codesync/internal/engine"
)

// WriteCSV renders issues as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, issues []engine.Issue) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(issueHeaders); err != nil {
		return err
	}
	for _, issue := range issues {
		if err := writer.Write(issueRow(issue)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
