package diag

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/quill/internal/check"
	"github.com/you-not-fish/quill/internal/syntax"
)

func TestFromParse(t *testing.T) {
	src := "let a = 1;\n1 = 2;\ntry = 3;"
	res := syntax.ParseString(src, syntax.RawMode)
	list := FromParse("a.q", src, res)
	require.Len(t, list, 2)

	d := list[0]
	assert.Equal(t, "a.q", d.File)
	assert.Equal(t, Error, d.Severity)
	assert.Equal(t, Range{Start: Position{2, 1}, End: Position{2, 2}}, d.Range)
	assert.Equal(t, "Invalid assignment target", d.Message)
	assert.Equal(t, SourceSyntax, d.Source)
	assert.Equal(t, "invalid-assignment-target", d.Code)

	assert.Equal(t, Warning, list[1].Severity)
	assert.Equal(t, "keyword-as-identifier", list[1].Code)
	assert.Equal(t, Position{3, 1}, list[1].Range.Start)
}

func TestFromCheck(t *testing.T) {
	src := "let a = 1;\n  b;"
	res := syntax.ParseString(src, syntax.RawMode)
	var errs []*check.Error
	check.Check(res.AST, &check.Config{Error: func(e *check.Error) { errs = append(errs, e) }}, nil)

	list := FromCheck("", src, errs)
	require.Len(t, list, 1)
	assert.Equal(t, Range{Start: Position{2, 3}, End: Position{2, 4}}, list[0].Range)
	assert.Equal(t, SourceCheck, list[0].Source)
	assert.Equal(t, "undefined", list[0].Code)
	assert.Equal(t, "2:3: error: undefined: b [undefined]", list[0].String())
}

func TestSort(t *testing.T) {
	at := func(file string, line, col int, sev Severity) Diagnostic {
		return Diagnostic{File: file, Severity: sev, Range: Range{Start: Position{line, col}}}
	}
	list := []Diagnostic{
		at("b.q", 1, 1, Error),
		at("a.q", 2, 1, Error),
		at("a.q", 1, 5, Warning),
		at("a.q", 1, 5, Error),
		at("a.q", 1, 2, Warning),
	}
	Sort(list)
	assert.Equal(t, []Diagnostic{
		at("a.q", 1, 2, Warning),
		at("a.q", 1, 5, Error),
		at("a.q", 1, 5, Warning),
		at("a.q", 2, 1, Error),
		at("b.q", 1, 1, Error),
	}, list)

	errors, warnings := Count(list)
	assert.Equal(t, 3, errors)
	assert.Equal(t, 2, warnings)
}

func TestFprint(t *testing.T) {
	list := []Diagnostic{
		{File: "x.q", Severity: Error, Range: Range{Start: Position{1, 4}}, Message: "boom", Code: "unexpected-token"},
		{Severity: Warning, Range: Range{Start: Position{2, 1}}, Message: "hmm", Code: "shadowed"},
	}
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, list))
	assert.Equal(t, "x.q:1:4: error: boom [unexpected-token]\n2:1: warning: hmm [shadowed]\n", buf.String())
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FprintJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	d := Diagnostic{
		Severity: Warning,
		Range:    Range{Start: Position{1, 2}, End: Position{1, 5}},
		Message:  "m",
		Source:   SourceCheck,
		Code:     "shadowed",
	}
	require.NoError(t, FprintJSON(&buf, []Diagnostic{d}))
	assert.JSONEq(t, `[{
		"severity": "warning",
		"range": {"start": {"line": 1, "col": 2}, "end": {"line": 1, "col": 5}},
		"message": "m",
		"source": "quill-check",
		"code": "shadowed"
	}]`, buf.String())

	var back []Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []Diagnostic{d}, back)
}

func TestSeverityText(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("warning")))
	assert.Equal(t, Warning, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
