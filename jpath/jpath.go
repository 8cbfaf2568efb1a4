// Package jpath implements a minimal JSONPath expression parser, and matchers
// that select the leaf values reported by the jleaf scanner.
//
// A compiled expression is matched against the path of each leaf as it is
// scanned, so only expressions that can be decided from the path alone are
// supported: names, wildcards, non-negative indices and slices, and the
// recursive descent operator. Filter and script selectors, and offsets
// counted from the end of an array, are rejected with ErrNotSupported.
package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = "$" { step }
  step = "." name | ".." name | [".."] "[" sel "]"
  name = WORD | "'" QTEXT "'" | "*"
   sel = name | INDEX { "," INDEX } | [INDEX] ":" [INDEX]

  WORD = RE `[0-9A-Za-z_]+`
 QTEXT = RE `[^']*`
 INDEX = RE `\d+`

Adapted from:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// ErrNotSupported is reported for an expression that cannot be matched
// against a leaf path during a scan.
var ErrNotSupported = errors.New("jpath: not supported for streaming match")

// An Expr is a parsed JSONPath expression.
type Expr []Step

// An Op is the kind of selector in a path step.
type Op byte

const (
	Name     Op = iota + 1 // a member name
	Wildcard               // any member or element (*)
	Index                  // a list of array offsets
	Slice                  // a half-open range of array offsets
)

func (o Op) String() string {
	switch o {
	case Name:
		return "name"
	case Wildcard:
		return "*"
	case Index:
		return "index"
	case Slice:
		return "slice"
	}
	return "invalid"
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op   Op
	Deep bool // the step may skip any number of keys ("..")

	Name    string // Name: the member name, unescaped
	Indices []int  // Index: the array offsets
	Lo, Hi  int    // Slice: the range [Lo, Hi); Hi < 0 if unbounded
}

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	p := &parser{src: s}
	if !p.eat("$") {
		return nil, fmt.Errorf("jpath: parse %q: missing root marker", s)
	}
	var e Expr
	for p.pos < len(s) {
		st, err := p.step()
		if err != nil {
			return nil, fmt.Errorf("jpath: parse %q at offset %d: %w", s, p.pos, err)
		}
		e = append(e, st)
	}
	return e, nil
}

// String renders e in normal form: names are written in dot notation where
// possible, and bracketed wildcards are written as ".*".
func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, st := range e {
		buf.WriteString(st.String())
	}
	return buf.String()
}

func (s Step) String() string {
	dot := "."
	if s.Deep {
		dot = ".."
	}
	switch s.Op {
	case Wildcard:
		return dot + "*"
	case Name:
		if isWord(s.Name) {
			return dot + s.Name
		}
	}

	var buf strings.Builder
	if s.Deep {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	switch s.Op {
	case Name:
		buf.WriteString("'" + s.Name + "'")
	case Index:
		for i, v := range s.Indices {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(v))
		}
	case Slice:
		if s.Lo != 0 {
			buf.WriteString(strconv.Itoa(s.Lo))
		}
		buf.WriteByte(':')
		if s.Hi >= 0 {
			buf.WriteString(strconv.Itoa(s.Hi))
		}
	}
	buf.WriteByte(']')
	return buf.String()
}

type parser struct {
	src string
	pos int
}

func (p *parser) rest() string { return p.src[p.pos:] }

// eat consumes s if it is next in the input, and reports whether it did.
func (p *parser) eat(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) step() (Step, error) {
	var st Step
	var err error
	switch {
	case p.eat(".."):
		if p.eat("[") {
			st, err = p.bracket()
		} else {
			st, err = p.member()
		}
		st.Deep = true
	case p.eat("."):
		st, err = p.member()
	case p.eat("["):
		st, err = p.bracket()
	default:
		err = errors.New("invalid path step")
	}
	return st, err
}

// member parses the name following "." or "..".
func (p *parser) member() (Step, error) {
	if p.eat("*") {
		return Step{Op: Wildcard}, nil
	} else if strings.HasPrefix(p.rest(), "'") {
		name, err := p.quoted()
		return Step{Op: Name, Name: name}, err
	} else if w := p.word(); w != "" {
		return Step{Op: Name, Name: w}, nil
	}
	return Step{}, errors.New("invalid name")
}

// bracket parses a selector after "[" through the closing "]".
func (p *parser) bracket() (Step, error) {
	var st Step
	var err error
	switch r := p.rest(); {
	case strings.HasPrefix(r, "?("), strings.HasPrefix(r, "("):
		return Step{}, fmt.Errorf("filter or script selector: %w", ErrNotSupported)
	case r == "":
		return Step{}, errors.New("missing selector")
	case r[0] == '-' || r[0] == ':' || isDigit(r[0]):
		st, err = p.offsets()
	default:
		st, err = p.member()
	}
	if err != nil {
		return Step{}, err
	} else if !p.eat("]") {
		return Step{}, errors.New("missing close bracket")
	}
	return st, nil
}

// offsets parses an index list or a slice.
func (p *parser) offsets() (Step, error) {
	lo, ok, err := p.offset()
	if err != nil {
		return Step{}, err
	}
	if p.eat(":") {
		hi, ok, err := p.offset()
		if err != nil {
			return Step{}, err
		}
		st := Step{Op: Slice, Lo: lo, Hi: -1}
		if ok {
			st.Hi = hi
		}
		return st, nil
	}

	st := Step{Op: Index}
	for {
		if !ok {
			return Step{}, errors.New("missing index")
		}
		st.Indices = append(st.Indices, lo)
		if !p.eat(",") {
			return st, nil
		}
		lo, ok, err = p.offset()
		if err != nil {
			return Step{}, err
		}
	}
}

// offset parses an optional array offset, and reports whether one was
// present. Offsets relative to the end of the array are not supported, since
// the length is not known until the array has been scanned.
func (p *parser) offset() (int, bool, error) {
	r := p.rest()
	n := 0
	if n < len(r) && r[n] == '-' {
		n++
	}
	start := n
	for n < len(r) && isDigit(r[n]) {
		n++
	}
	if n == start {
		if n != 0 {
			return 0, false, errors.New("invalid index")
		}
		return 0, false, nil
	}
	text := r[:n]
	p.pos += n
	if start != 0 {
		return 0, false, fmt.Errorf("negative offset %s: %w", text, ErrNotSupported)
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, false, fmt.Errorf("invalid index %q", text)
	}
	return v, true, nil
}

func (p *parser) quoted() (string, error) {
	body := p.rest()[1:]
	i := strings.IndexByte(body, '\'')
	if i < 0 {
		return "", errors.New("unterminated quoted name")
	}
	p.pos += i + 2
	return body[:i], nil
}

func (p *parser) word() string {
	r := p.rest()
	n := 0
	for n < len(r) && isWordByte(r[n]) {
		n++
	}
	p.pos += n
	return r[:n]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordByte(b byte) bool {
	return isDigit(b) || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}
