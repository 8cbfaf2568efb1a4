// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jleaf

import (
	"unicode"
	"unicode/utf8"

	"go4.org/mem"
)

// Scan scans input and calls f with the path and value of each leaf value
// (string, number, true, false, null) in the order they occur. Scan processes
// the whole input; if it fails, the error has concrete type *SyntaxError and
// f has already seen every value that preceded the error.
//
// The Path and Value passed to f are only valid for the duration of the call.
func Scan(input string, f func(Path, Value)) error {
	return scan(mem.S(input), func(p Path, v Value) bool { f(p, v); return false })
}

// ScanUntil behaves as Scan, but if f returns true scanning stops immediately
// and ScanUntil returns nil without examining the rest of the input.
func ScanUntil(input string, f func(Path, Value) bool) error {
	return scan(mem.S(input), f)
}

// ScanBytes behaves as ScanUntil, but scans a byte slice in place. The caller
// must not modify input until ScanBytes returns.
func ScanBytes(input []byte, f func(Path, Value) bool) error {
	return scan(mem.B(input), f)
}

func scan(input mem.RO, f func(Path, Value) bool) error {
	s := &scanner{in: input, emit: f}
	for pos := 0; pos < input.Len(); {
		ch, n := rune(input.At(pos)), 1
		if ch >= utf8.RuneSelf {
			ch, n = mem.DecodeRune(input.SliceFrom(pos))
		}
		if err := s.step(pos, n, ch); err != nil {
			return err
		} else if s.stop {
			return nil
		}
		pos += n
	}
	return s.finish()
}

// A mode is a lexical mode of the scanner.
type mode byte

const (
	expectingValue mode = iota // about to read a value
	inObject                   // inside {...}, awaiting a key or "}"
	inKey                      // inside a quoted member name
	colon                      // awaiting ":" after a key
	stringValue                // inside a quoted string value
	numberValue                // inside a bare number
	literalValue               // inside true, false, or null
	endOfValue                 // a value just ended
	inComment                  // inside //, #, or /* */
)

// scanner holds the state of a single scan.
type scanner struct {
	in   mem.RO
	emit func(Path, Value) bool
	stop bool // emit requested an early exit
	path stack

	mode  mode
	start int // offset of the current token

	escaped bool // stringValue, inKey: the previous rune was an unescaped "\"

	// Comment state. The resume mode is restored when the comment ends.
	resume    mode
	opened    bool // the comment introducer is complete
	multiline bool // this is a /* block */ comment
	star      bool // the previous rune of a block comment was "*"
}

// step advances the scanner over the rune ch of n bytes at offset pos.
func (s *scanner) step(pos, n int, ch rune) error {
	switch s.mode {
	case expectingValue:
		return s.expectValue(pos, n, ch)

	case inObject:
		switch {
		case ch == '"':
			s.mode, s.start, s.escaped = inKey, pos+n, false
		case ch == '}':
			s.mode = endOfValue
		case ch == '/' || ch == '#':
			s.beginComment(ch)
		case ch == ']':
			return s.fail(pos, ExpectedBracket)
		case !isSpace(ch):
			return s.fail(pos, ExpectedQuote)
		}

	case inKey:
		if ch == '"' && !s.escaped {
			s.path.push(Key{name: s.in.Slice(s.start, pos)})
			s.mode = colon
		} else {
			s.escaped = ch == '\\' && !s.escaped
		}

	case colon:
		if ch == ':' {
			s.mode = expectingValue
		} else if ch == '/' || ch == '#' {
			s.beginComment(ch)
		} else if !isSpace(ch) {
			return s.fail(pos, ExpectedColon)
		}

	case stringValue:
		if ch == '"' && !s.escaped {
			s.mode = endOfValue
			s.yield(String, s.in.Slice(s.start, pos))
		} else {
			s.escaped = ch == '\\' && !s.escaped
		}

	case numberValue:
		// Numbers are not validated: any rune other than a delimiter extends
		// the current token.
		if isSpace(ch) || isNumberEnd(ch) {
			s.mode = endOfValue
			if s.yield(Number, s.in.Slice(s.start, pos)) {
				return nil
			}
			return s.endOfValue(pos, ch)
		}

	case literalValue:
		return s.literal(pos, n)

	case endOfValue:
		return s.endOfValue(pos, ch)

	case inComment:
		return s.comment(pos, ch)
	}
	return nil
}

func (s *scanner) expectValue(pos, n int, ch rune) error {
	switch ch {
	case '{':
		s.mode = inObject
	case '[':
		s.path.push(Key{index: 0, isIndex: true})
	case ']':
		// An index of zero on top means no element has been read since "[".
		if top := s.path.top(); top == nil || !top.isIndex || top.index != 0 {
			return s.fail(pos, ExpectedValue)
		}
		s.path.pop()
		s.mode = endOfValue
	case '"':
		s.mode, s.start, s.escaped = stringValue, pos+n, false
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.mode, s.start = numberValue, pos
	case 't', 'f', 'n':
		s.mode, s.start = literalValue, pos
	case '/', '#':
		s.beginComment(ch)
	default:
		if !isSpace(ch) {
			return s.fail(pos, ExpectedValue)
		}
	}
	return nil
}

// endOfValue implements the transition following a complete value.
// It is shared by the endOfValue mode and the delimiter of a number.
func (s *scanner) endOfValue(pos int, ch rune) error {
	top := s.path.top()
	switch {
	case ch == ',':
		if top == nil {
			return s.fail(pos, ExpectedEndOfValue)
		} else if top.isIndex {
			top.index++
			s.mode = expectingValue
		} else {
			s.path.pop()
			s.mode = inObject
		}
	case ch == '}':
		if top == nil || top.isIndex {
			return s.fail(pos, ExpectedBracket)
		}
		s.path.pop()
	case ch == ']':
		if top == nil || !top.isIndex {
			return s.fail(pos, ExpectedBracket)
		}
		s.path.pop()
	case ch == '/' || ch == '#':
		s.beginComment(ch)
	case !isSpace(ch):
		return s.fail(pos, ExpectedEndOfValue)
	}
	return nil
}

// literal advances over one of the constants true, false, null.  The token
// is checked when it reaches four bytes ("true", "null", or the prefix
// "fals") and again at five bytes ("false").
func (s *scanner) literal(pos, n int) error {
	tok := s.in.Slice(s.start, pos+n)
	switch tok.Len() {
	case 1, 2, 3:
		return nil
	case 4:
		if tok.EqualString("true") {
			s.mode = endOfValue
			s.yield(True, tok)
		} else if tok.EqualString("null") {
			s.mode = endOfValue
			s.yield(Null, tok)
		} else if !tok.EqualString("fals") {
			return s.fail(pos, ExpectedTrueFalseNull)
		}
		return nil
	case 5:
		if tok.EqualString("false") {
			s.mode = endOfValue
			s.yield(False, tok)
			return nil
		}
	}
	return s.fail(pos, ExpectedTrueFalseNull)
}

func (s *scanner) beginComment(ch rune) {
	s.resume, s.mode = s.mode, inComment
	s.opened = ch == '#'
	s.multiline, s.star = false, false
}

func (s *scanner) comment(pos int, ch rune) error {
	switch {
	case !s.opened:
		// The rune after the initial "/" selects the comment style.
		if ch == '/' {
			s.opened = true
		} else if ch == '*' {
			s.opened, s.multiline = true, true
		} else {
			return s.fail(pos, unexpected(s.resume))
		}
	case s.multiline:
		if s.star && ch == '/' {
			s.mode = s.resume
		} else {
			s.star = ch == '*'
		}
	case ch == '\n':
		s.mode = s.resume
	}
	return nil
}

// finish checks the state of the scanner at the end of the input.
func (s *scanner) finish() error {
	end := s.in.Len()
	if s.mode == inComment {
		if !s.opened {
			return s.fail(end, unexpected(s.resume))
		} else if s.multiline {
			return s.fail(end, ExpectedEndOfMultilineComment)
		}
		s.mode = s.resume // a line comment ends with the input
	}

	switch s.mode {
	case numberValue:
		s.mode = endOfValue
		if s.yield(Number, s.in.SliceFrom(s.start)) {
			return nil
		}
	case stringValue, inKey:
		return s.fail(end, ExpectedQuote)
	case colon:
		return s.fail(end, ExpectedColon)
	case literalValue:
		return s.fail(end, ExpectedTrueFalseNull)
	case inObject:
		return s.fail(end, ExpectedBracket)
	}

	// Remaining modes are expectingValue and endOfValue, which are complete
	// only if no object or array is still open.
	if s.path.len() != 0 {
		return s.fail(end, ExpectedBracket)
	}
	return nil
}

// yield reports a value to the callback and records whether the callback
// requested an early exit.
func (s *scanner) yield(kind Kind, text mem.RO) bool {
	s.stop = s.emit(s.path.keys, Value{Kind: kind, Text: text})
	return s.stop
}

func (s *scanner) fail(pos int, r Reason) error {
	return &SyntaxError{Offset: pos, Location: locate(s.in, pos), Reason: r}
}

// unexpected reports the error reason for an unexpected rune in mode m.
func unexpected(m mode) Reason {
	switch m {
	case inObject:
		return ExpectedQuote
	case colon:
		return ExpectedColon
	case endOfValue:
		return ExpectedEndOfValue
	default:
		return ExpectedValue
	}
}

func isSpace(ch rune) bool {
	if ch < utf8.RuneSelf {
		return ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' || ch == '\v' || ch == '\f'
	}
	return unicode.IsSpace(ch)
}

func isNumberEnd(ch rune) bool {
	return ch == ',' || ch == '}' || ch == ']' || ch == '/' || ch == '#'
}
