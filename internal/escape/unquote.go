// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the contents of a JSON string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))

		var err error
		dec, src, err = unescape(dec, src.SliceFrom(i+1))
		if err != nil {
			return nil, err
		}
	}
}

// unescape decodes the escape sequence at the front of src, whose leading
// backslash has been removed, and appends the result to dec. It returns the
// extended dec and the remainder of src.
func unescape(dec []byte, src mem.RO) ([]byte, mem.RO, error) {
	if src.Len() == 0 {
		return nil, src, errors.New("incomplete escape sequence")
	}
	r, n := mem.DecodeRune(src)
	src = src.SliceFrom(n)
	switch r {
	case '"', '\\', '/':
		return append(dec, byte(r)), src, nil
	case 'b':
		return append(dec, '\b'), src, nil
	case 'f':
		return append(dec, '\f'), src, nil
	case 'n':
		return append(dec, '\n'), src, nil
	case 'r':
		return append(dec, '\r'), src, nil
	case 't':
		return append(dec, '\t'), src, nil
	case 'u':
		if src.Len() < 4 {
			return nil, src, errors.New("incomplete Unicode escape")
		}
		v, ok := parseHex4(src.SliceTo(4))
		if !ok {
			v = utf8.RuneError
		}
		return utf8.AppendRune(dec, v), src.SliceFrom(4), nil
	default:
		return utf8.AppendRune(dec, utf8.RuneError), src, nil
	}
}

func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
