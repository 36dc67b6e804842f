package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It walks an in-memory UTF-8 string one character at a time.
type source struct {
	buf string // source text

	// Current state
	ch   rune // current character, -1 for EOF
	offs int  // byte offset of ch
	next int  // byte offset after ch

	// Position of ch
	line int // 1-based line number
	col  int // 1-based column number (in characters)
}

// init resets the reader to the start of buf.
//
// Position tracking: (line, col) always refers to the position of s.ch
// after nextch() returns.
// Initial state: line=1, col=0, s.ch=-1
// After first nextch(): line=1, col=1, s.ch=first char
func (s *source) init(buf string) {
	s.buf = buf
	s.ch = -1
	s.offs = 0
	s.next = 0
	s.line = 1
	s.col = 0
	s.nextch()
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
func (s *source) nextch() {
	// Update position based on previous character first
	if isLineBreak(s.ch) {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.offs = s.next
	if s.next >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRuneInString(s.buf[s.next:])
	s.ch = r
	s.next += width
}

// peek returns the character after s.ch without consuming anything,
// or -1 at EOF.
func (s *source) peek() rune {
	if s.next >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.buf[s.next:])
	return r
}

// hasPrefix reports whether the unread text starting at s.ch begins with p.
func (s *source) hasPrefix(p string) bool {
	return s.ch >= 0 && len(s.buf)-s.offs >= len(p) && s.buf[s.offs:s.offs+len(p)] == p
}

// skip advances n characters.
func (s *source) skip(n int) {
	for ; n > 0 && s.ch >= 0; n-- {
		s.nextch()
	}
}

// atEOF reports whether the reader is exhausted.
func (s *source) atEOF() bool {
	return s.ch < 0
}
