// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jleaf"
)

// Parse scans input and returns a syntax tree for the value it contains.
// In case of error, the partial tree built from the values scanned before
// the error is returned along with the error.
//
// The tree is reconstructed from the paths of the leaf values, so empty
// objects and arrays, which contain no leaves, do not appear in it. An input
// containing no leaf values yields a nil Value.  Consecutive members of an
// object that have the same key and hold objects or arrays are merged into a
// single member.
//
// Array lengths are not preserved. An empty object or array that precedes a
// reported element of its array is a nil element, but empty containers after
// the last reported element are dropped: [{}, 1] yields [null,1] while
// [1, {}] yields [1].
func Parse(input string) (Value, error) {
	var b builder
	err := jleaf.Scan(input, b.add)
	return b.root, err
}

// A builder constructs a syntax tree from scanner events.
//
// The open stack holds the containers along the path of the most recent
// event, with open[0] the root. The container open[i+1] is the value of key
// keys[i] in open[i].
type builder struct {
	root Value
	open []Value
	keys []jleaf.Key
}

func (b *builder) add(p jleaf.Path, v jleaf.Value) {
	leaf := newDatum(v)
	if len(p) == 0 {
		b.root = leaf
		return
	}

	// Find how much of the open path the new value shares.
	d := 0
	for d < len(b.open) && d < len(p) && isKind(b.open[d], p[d]) {
		if d > 0 && !b.keys[d-1].Equal(p[d-1]) {
			break
		}
		d++
	}
	b.open, b.keys = b.open[:d], b.keys[:max(d-1, 0)]
	if d == 0 {
		b.root = newContainer(p[0])
		b.open = append(b.open, b.root)
	}

	// Open containers for the remainder of the path.
	for i := len(b.open); i < len(p); i++ {
		c := newContainer(p[i])
		attach(b.open[i-1], p[i-1], c)
		b.open = append(b.open, c)
		b.keys = append(b.keys, keyOf(p[i-1]))
	}
	last := len(p) - 1
	attach(b.open[last], p[last], leaf)
}

// keyOf returns a copy of k that does not share storage with the input.
func keyOf(k jleaf.Key) jleaf.Key { return jleaf.Path{k}.Clone()[0] }

// isKind reports whether container c can hold key k.
func isKind(c Value, k jleaf.Key) bool {
	switch c.(type) {
	case *Array:
		return k.IsIndex()
	case *Object:
		return !k.IsIndex()
	}
	return false
}

func newContainer(k jleaf.Key) Value {
	if k.IsIndex() {
		return new(Array)
	}
	return new(Object)
}

// attach adds v to container c at key k.
func attach(c Value, k jleaf.Key, v Value) {
	switch t := c.(type) {
	case *Array:
		// Elements that were never reported (empty containers) are nil.
		for len(t.Values) < k.Index() {
			t.Values = append(t.Values, nil)
		}
		t.Values = append(t.Values, v)
	case *Object:
		name, err := k.Unquote()
		if err != nil {
			name = k.String()
		}
		t.Members = append(t.Members, &Member{Key: name, Value: v})
	default:
		panic(fmt.Sprintf("attach to %T", c))
	}
}

// newDatum converts a scanner value into an owned syntax tree value.
func newDatum(v jleaf.Value) Value {
	switch v.Kind {
	case jleaf.String:
		s, err := v.Unquote()
		if err != nil {
			s = v.Text.StringCopy()
		}
		return String(s)
	case jleaf.Number:
		return Number(v.Text.StringCopy())
	case jleaf.True, jleaf.False:
		return Bool(v.Bool())
	default:
		return Null{}
	}
}
