// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jleaf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jleaf/internal/escape"

	"go4.org/mem"
)

// Kind is the type of a leaf value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid value
	String              // quoted string
	Number              // number, unvalidated
	True                // constant: true
	False               // constant: false
	Null                // constant: null
)

var kindStr = [...]string{
	Invalid: "invalid",
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Value is a leaf value reported by the scanner.
//
// Text is a view of the value's source text: for a String, the contents
// between the quotation marks with escapes intact; for a Number, the token
// exactly as written (it is not checked against the JSON number grammar);
// for the constants, the literal itself. The view shares memory with the
// scanned input and is only valid for the duration of the callback.
type Value struct {
	Kind Kind
	Text mem.RO
}

// String renders v as it appeared in the input. Strings are quoted.
func (v Value) String() string {
	if v.Kind == String {
		return `"` + v.Text.StringCopy() + `"`
	}
	return v.Text.StringCopy()
}

// Unquote returns the decoded text of a String value, with escape sequences
// replaced by their unescaped equivalents. Invalid escapes are replaced by
// the Unicode replacement rune; an incomplete escape is an error.
func (v Value) Unquote() (string, error) {
	if v.Kind != String {
		return "", fmt.Errorf("value is %v, not a string", v.Kind)
	}
	dec, err := escape.Unquote(v.Text)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Int64 parses the text of a Number value as a base-10 integer.
func (v Value) Int64() (int64, error) {
	if v.Kind != Number {
		return 0, fmt.Errorf("value is %v, not a number", v.Kind)
	}
	return mem.ParseInt(v.Text, 10, 64)
}

// Float64 parses the text of a Number value as a floating-point value.
func (v Value) Float64() (float64, error) {
	if v.Kind != Number {
		return 0, fmt.Errorf("value is %v, not a number", v.Kind)
	}
	return mem.ParseFloat(v.Text, 64)
}

// Bool reports whether v is the constant true.
func (v Value) Bool() bool { return v.Kind == True }

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = escape.AppendQuote(buf, mem.S(src))
	return string(append(buf, '"'))
}

// Unquote decodes a quoted JSON string.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
