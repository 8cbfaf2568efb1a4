// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and a builder
// that constructs syntax trees from the leaf values reported by the scanner.
package ast

import (
	"encoding/json"
	"strings"

	"github.com/creachadair/jleaf"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value.
// The concrete type is one of *Object, *Array, String, Number, Bool, or Null.
type Value interface {
	// JSON renders the value as compact JSON source text.
	JSON() string
}

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
// The key is decoded.
type Member struct {
	Key   string
	Value Value
}

// JSON renders m as "key":value.
func (m *Member) JSON() string { return jleaf.Quote(m.Key) + ":" + render(m.Value) }

// An Array is a sequence of values.
//
// An element whose value was not reported by the scanner, because it was an
// empty object or array, is nil.
type Array struct {
	Values []Value
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(render(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// A String is a decoded string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jleaf.Quote(string(s)) }

// A Number is the text of a number value, as written in the input.
type Number string

// JSON satisfies the Value interface.
func (n Number) JSON() string { return string(n) }

// Int64 parses n as a base-10 integer.
func (n Number) Int64() (int64, error) { return mem.ParseInt(mem.S(string(n)), 10, 64) }

// Float64 parses n as a floating-point value.
func (n Number) Float64() (float64, error) { return mem.ParseFloat(mem.S(string(n)), 64) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// render renders v as JSON, treating a missing value as null.
func render(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}

// ToAny converts v into plain Go values: objects become map[string]any,
// arrays []any, strings string, numbers json.Number, constants bool or nil.
// If an object has duplicate keys, the last one wins.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, len(t.Members))
		for _, mem := range t.Members {
			m[mem.Key] = ToAny(mem.Value)
		}
		return m
	case *Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = ToAny(elt)
		}
		return out
	case String:
		return string(t)
	case Number:
		return json.Number(t)
	case Bool:
		return bool(t)
	default:
		return nil
	}
}
