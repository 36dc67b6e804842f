// Package diag converts parser and checker problems into diagnostics with
// line/column ranges, and renders them as text or JSON.
package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/you-not-fish/quill/internal/check"
	"github.com/you-not-fish/quill/internal/syntax"
)

// Diagnostic sources.
const (
	SourceSyntax = "quill-syntax"
	SourceCheck  = "quill-check"
)

// Severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = Error
	case "warning":
		*s = Warning
	default:
		return fmt.Errorf("unknown severity %q", b)
	}
	return nil
}

func severity(s syntax.Severity) Severity {
	if s == syntax.SeverityWarning {
		return Warning
	}
	return Error
}

// Position is a 1-based line and column. Columns count characters.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Range is the half-open span [Start, End) of a diagnostic.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	File     string   `json:"file,omitempty"`
	Severity Severity `json:"severity"`
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
	Code     string   `json:"code"`
}

func span(lines *syntax.LineMap, start, end int) Range {
	s, e := lines.Position(start), lines.Position(end)
	return Range{
		Start: Position{Line: s.Line, Col: s.Col},
		End:   Position{Line: e.Line, Col: e.Col},
	}
}

// FromParse converts the errors and warnings of a parse of src.
func FromParse(file, src string, res *syntax.Result) []Diagnostic {
	lines := syntax.NewLineMap(src)
	out := make([]Diagnostic, 0, len(res.Errors)+len(res.Warnings))
	for _, list := range [][]*syntax.ParseError{res.Errors, res.Warnings} {
		for _, e := range list {
			out = append(out, Diagnostic{
				File:     file,
				Severity: severity(e.Severity),
				Range:    span(lines, e.Start, e.End),
				Message:  e.Msg,
				Source:   SourceSyntax,
				Code:     string(e.Code),
			})
		}
	}
	return out
}

// FromCheck converts checker problems found in src.
func FromCheck(file, src string, errs []*check.Error) []Diagnostic {
	lines := syntax.NewLineMap(src)
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, Diagnostic{
			File:     file,
			Severity: severity(e.Severity),
			Range:    span(lines, e.Start, e.End),
			Message:  e.Msg,
			Source:   SourceCheck,
			Code:     string(e.Code),
		})
	}
	return out
}

// Sort orders diagnostics by file and start position. Errors come before
// warnings at the same position. The sort is stable.
func Sort(list []Diagnostic) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		if a.Range.Start.Col != b.Range.Start.Col {
			return a.Range.Start.Col < b.Range.Start.Col
		}
		return a.Severity < b.Severity
	})
}

// Count returns the number of errors and warnings in list.
func Count(list []Diagnostic) (errors, warnings int) {
	for _, d := range list {
		if d.Severity == Warning {
			warnings++
		} else {
			errors++
		}
	}
	return errors, warnings
}

// String renders d as file:line:col: severity: message [code].
func (d Diagnostic) String() string {
	prefix := ""
	if d.File != "" {
		prefix = d.File + ":"
	}
	return fmt.Sprintf("%s%d:%d: %s: %s [%s]",
		prefix, d.Range.Start.Line, d.Range.Start.Col, d.Severity, d.Message, d.Code)
}

// Fprint writes one line per diagnostic.
func Fprint(w io.Writer, list []Diagnostic) error {
	for _, d := range list {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	return nil
}

// FprintJSON writes the diagnostics as a JSON array.
func FprintJSON(w io.Writer, list []Diagnostic) error {
	if list == nil {
		list = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
