// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jleaf

import (
	"strconv"
	"strings"

	"github.com/creachadair/jleaf/internal/escape"

	"go4.org/mem"
)

// A Key is a single element of a Path: either the name of an object member
// or the offset of an array element.
//
// The name of a member key is the raw text of the key as written in the
// input, without its quotation marks and with escape sequences intact.
// Use Unquote to decode it.
type Key struct {
	name    mem.RO
	index   int
	isIndex bool
}

// NameKey returns a member Key for the specified (unescaped) name.
// The name is escaped as it would be written in JSON source.
func NameKey(name string) Key {
	return Key{name: mem.B(escape.AppendQuote(nil, mem.S(name)))}
}

// IndexKey returns an array Key for offset i.
func IndexKey(i int) Key { return Key{index: i, isIndex: true} }

// IsIndex reports whether k is an array index.
func (k Key) IsIndex() bool { return k.isIndex }

// Index returns the array offset of k, or -1 if k is a member name.
func (k Key) Index() int {
	if !k.isIndex {
		return -1
	}
	return k.index
}

// Name returns a view of the raw member name of k. If k is an array index,
// the view is empty.
func (k Key) Name() mem.RO { return k.name }

// Unquote returns the decoded member name of k.
// It reports an error if k is an array index.
func (k Key) Unquote() (string, error) {
	if k.isIndex {
		return "", errIndexKey
	}
	dec, err := escape.Unquote(k.name)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Equal reports whether k and k2 are the same key. Member names are compared
// in their raw (escaped) form.
func (k Key) Equal(k2 Key) bool {
	return k.isIndex == k2.isIndex && k.index == k2.index && k.name.Equal(k2.name)
}

// String returns the raw member name of k, or its array offset in decimal.
func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name.StringCopy()
}

// A Path is a sequence of keys from the root of a document to a value.
// The path of a value at the root is empty.
//
// A Path passed to a scan callback is only valid for the duration of that
// call, as the scanner reuses its storage. Use Clone to retain it.
type Path []Key

// Clone returns a copy of p that does not share storage with p or with the
// input it was scanned from.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	for i, k := range p {
		if !k.isIndex {
			k.name = mem.S(k.name.StringCopy())
		}
		out[i] = k
	}
	return out
}

// Equal reports whether p and q have the same keys in the same order.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i, k := range p {
		if !k.Equal(q[i]) {
			return false
		}
	}
	return true
}

// String renders p in JSONPath bracket notation, for example $["a"][0].
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, k := range p {
		sb.WriteByte('[')
		if k.isIndex {
			sb.WriteString(strconv.Itoa(k.index))
		} else {
			sb.WriteByte('"')
			sb.WriteString(k.name.StringCopy())
			sb.WriteByte('"')
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

// stack is the scanner's path stack. Only the top element is ever modified
// in place, to advance an array index.
type stack struct {
	keys Path
}

func (s *stack) push(k Key) { s.keys = append(s.keys, k) }

func (s *stack) pop() {
	if n := len(s.keys); n != 0 {
		s.keys = s.keys[:n-1]
	}
}

// top returns a pointer to the top element, or nil if the stack is empty.
func (s *stack) top() *Key {
	if len(s.keys) == 0 {
		return nil
	}
	return &s.keys[len(s.keys)-1]
}

func (s *stack) len() int { return len(s.keys) }
