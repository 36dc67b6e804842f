package syntax

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column pair. Columns count characters,
// not bytes. The zero value is an invalid position.
type Position struct {
	Line int
	Col  int
}

// String returns the position in the format "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// LineMap converts byte offsets of one source text into positions and back.
// It agrees with the lexer's own line/column tracking.
type LineMap struct {
	src   string
	lines []int // byte offset of the first character of each line
}

// NewLineMap indexes the line starts of src.
func NewLineMap(src string) *LineMap {
	m := &LineMap{src: src, lines: []int{0}}
	for i, r := range src {
		if isLineBreak(r) {
			m.lines = append(m.lines, i+utf8.RuneLen(r))
		}
	}
	return m
}

// LineCount returns the number of lines in the source.
func (m *LineMap) LineCount() int {
	return len(m.lines)
}

// Position returns the position of the byte offset offs.
// Offsets outside the source are clamped to its bounds.
func (m *LineMap) Position(offs int) Position {
	if offs < 0 {
		offs = 0
	}
	if offs > len(m.src) {
		offs = len(m.src)
	}
	i := sort.Search(len(m.lines), func(i int) bool { return m.lines[i] > offs }) - 1
	start := m.lines[i]
	return Position{Line: i + 1, Col: utf8.RuneCountInString(m.src[start:offs]) + 1}
}

// Offset returns the byte offset of p. Columns past the end of the line
// map to the line end; lines past the end map to the end of the source.
func (m *LineMap) Offset(p Position) int {
	if p.Line < 1 {
		return 0
	}
	if p.Line > len(m.lines) {
		return len(m.src)
	}
	offs := m.lines[p.Line-1]
	end := len(m.src)
	if p.Line < len(m.lines) {
		end = m.lines[p.Line]
	}
	for col := 1; col < p.Col && offs < end; col++ {
		r, w := utf8.DecodeRuneInString(m.src[offs:])
		if isLineBreak(r) {
			break
		}
		offs += w
	}
	return offs
}
