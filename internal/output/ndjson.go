package output

import (
	"encoding/json"
	"io"

	"codesync/internal/engine"
)

// WriteNDJSON streams issues as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, issues []engine.Issue) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, issue := range issues {
		if err := enc.Encode(issue); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the whole result as one indented JSON document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
