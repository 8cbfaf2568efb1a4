// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jleaf implements a single-pass, event-driven scanner for JSON
// extended with comments.
//
// # Scanning
//
// The Scan function walks its input once and calls a function for each leaf
// value, that is each string, number, true, false, or null, reporting the
// path of object keys and array offsets from the root of the document to
// the value. Objects and arrays are not reported themselves; their structure
// is visible only through the paths of the values they contain.
//
//	err := jleaf.Scan(input, func(p jleaf.Path, v jleaf.Value) {
//	   log.Printf("%v = %v", p, v)
//	})
//
// For the input
//
//	{"a": [true, {"b": null}], "c": "d"}
//
// the function is called with
//
//	$["a"][0]       true
//	$["a"][1]["b"]  null
//	$["c"]          "d"
//
// A value at the root of the document is reported with an empty path.
//
// To stop before the end of the input, use ScanUntil, whose callback returns
// true to request an early exit. ScanUntil then returns nil without looking
// at the rest of the input:
//
//	var first jleaf.Value
//	jleaf.ScanUntil(input, func(_ jleaf.Path, v jleaf.Value) bool {
//	   first = jleaf.Value{Kind: v.Kind, Text: mem.S(v.Text.StringCopy())}
//	   return true
//	})
//
// # Borrowed values
//
// The scanner does not allocate copies of the input. The Path and Value
// passed to a callback are views of the input and of the scanner's internal
// path stack, and are only valid for the duration of that call. The callback
// must copy any data it needs to retain, for example with Path.Clone,
// Value.Unquote, or Value.Text.StringCopy.
//
// Numbers are reported as the raw text of the token and are not checked
// against the JSON number grammar; use Value.Int64 or Value.Float64 to parse
// them. Strings are reported without their quotation marks and with escape
// sequences intact; use Value.Unquote to decode them.
//
// # Comments
//
// In addition to standard JSON, the scanner accepts line comments beginning
// with "//" or "#" and block comments delimited by "/*" and "*/", anywhere a
// value, key, or separator may occur. Comments are discarded. The last member
// of an object may be followed by a comma; the last element of an array may
// not.
//
// # Errors
//
// A syntax error stops the scan. The error has concrete type *SyntaxError,
// which reports the byte offset and line/column location of the problem and
// wraps a Reason:
//
//	var serr *jleaf.SyntaxError
//	if errors.As(err, &serr) {
//	   log.Printf("At offset %d: %v", serr.Offset, serr.Reason)
//	}
//	if errors.Is(err, jleaf.ExpectedColon) { ... }
//
// Values reported before the error are not retracted.
package jleaf
