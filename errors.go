// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jleaf

import (
	"errors"
	"fmt"
)

// A Reason identifies the kind of syntax error reported by the scanner.
// Reason values implement the error interface, so that a caller may write
//
//	if errors.Is(err, jleaf.ExpectedColon) { ... }
type Reason byte

// Constants defining the valid Reason values.
const (
	ExpectedColon                 Reason = iota + 1 // missing ":" after an object key
	ExpectedEndOfValue                              // unexpected rune after a complete value
	ExpectedBracket                                 // mismatched or missing "}" or "]"
	ExpectedTrueFalseNull                           // malformed true, false, or null
	ExpectedValue                                   // unexpected rune where a value must begin
	ExpectedEndOfMultilineComment                   // unterminated /* comment
	ExpectedQuote                                   // unterminated string or key, or a missing key
)

var reasonStr = [...]string{
	0:                             "unknown error",
	ExpectedColon:                 `expected ":" after object key`,
	ExpectedEndOfValue:            "expected separator or closing bracket after value",
	ExpectedBracket:               "mismatched or missing closing bracket",
	ExpectedTrueFalseNull:         "invalid constant, expected true, false or null",
	ExpectedValue:                 "expected a value",
	ExpectedEndOfMultilineComment: `unterminated block comment, expected "*/"`,
	ExpectedQuote:                 "expected quotation mark",
}

func (r Reason) String() string {
	if int(r) >= len(reasonStr) {
		return reasonStr[0]
	}
	return reasonStr[r]
}

// Error satisfies the error interface.
func (r Reason) Error() string { return r.String() }

// SyntaxError is the concrete type of errors reported by the scanner.
// A SyntaxError is terminal: the scan that reported it has stopped.
type SyntaxError struct {
	Offset   int     // byte offset of the error in the input, 0-based
	Location LineCol // line and column of Offset
	Reason   Reason  // what the scanner expected to find
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Reason)
}

// Unwrap supports error wrapping. It returns the Reason of s.
func (s *SyntaxError) Unwrap() error { return s.Reason }

var errIndexKey = errors.New("array index has no name")
