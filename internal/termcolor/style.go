package termcolor

import (
	"fmt"
	"strings"
)

type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
}

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 4)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.FGBasic != nil {
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return codes
}

// Diagnostic styles for the check report.

func ErrorStyle() Style {
	color := 1
	return Style{Bold: true, FGBasic: &color}
}

func LabelStyle() Style {
	color := 6
	return Style{FGBasic: &color}
}

func LocationStyle() Style {
	return Style{Dim: true}
}

func NoteStyle() Style {
	color := 4
	return Style{FGBasic: &color}
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}
