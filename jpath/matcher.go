package jpath

import (
	"github.com/creachadair/jleaf"
	"go4.org/mem"
)

// A Matcher is a compiled JSONPath expression. A Matcher is safe for
// concurrent use by multiple goroutines.
type Matcher struct {
	expr Expr
	segs []segment
}

// A segment is one compiled step. A deep segment may skip any number of keys
// before its selector matches.
type segment struct {
	deep bool
	sel  selector
}

type selector interface {
	match(jleaf.Key) bool
}

// Compile parses s and compiles it into a Matcher.
func Compile(s string) (*Matcher, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	segs := make([]segment, len(e))
	for i, st := range e {
		segs[i] = compileStep(st)
	}
	return &Matcher{expr: e, segs: segs}, nil
}

// MustCompile is as Compile, but panics if s cannot be compiled.
func MustCompile(s string) *Matcher {
	m, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return m
}

func compileStep(st Step) segment {
	seg := segment{deep: st.Deep}
	switch st.Op {
	case Name:
		seg.sel = newNameSel(st.Name)
	case Index:
		seg.sel = indexSel(st.Indices)
	case Slice:
		seg.sel = sliceSel{lo: st.Lo, hi: st.Hi}
	default:
		seg.sel = anyKey{}
	}
	return seg
}

// String returns the expression m was compiled from, in normal form.
func (m *Matcher) String() string { return m.expr.String() }

// Match reports whether m selects the leaf at path, or any object or array
// that contains it. The empty expression "$" selects every leaf.
func (m *Matcher) Match(path jleaf.Path) bool { return m.match(m.segs, path) }

func (m *Matcher) match(segs []segment, p jleaf.Path) bool {
	if len(segs) == 0 {
		return true
	} else if len(p) == 0 {
		return false
	}
	seg := segs[0]
	if !seg.deep {
		return seg.sel.match(p[0]) && m.match(segs[1:], p[1:])
	}
	for i, k := range p {
		if seg.sel.match(k) && m.match(segs[1:], p[i+1:]) {
			return true
		}
	}
	return false
}

// Select scans input and calls f with the path and value of each leaf
// selected by m. If f returns true, scanning stops and Select returns nil.
// Errors have the same form as those of jleaf.ScanUntil.
func Select(input string, m *Matcher, f func(jleaf.Path, jleaf.Value) bool) error {
	return jleaf.ScanUntil(input, func(p jleaf.Path, v jleaf.Value) bool {
		return m.Match(p) && f(p, v)
	})
}

// First returns the value and path of the first leaf of input selected by
// m, and reports whether one was found. The scan stops at the first match,
// so a syntax error later in the input is not reported. The results do not
// share storage with input.
func First(input string, m *Matcher) (jleaf.Value, jleaf.Path, bool, error) {
	var val jleaf.Value
	var path jleaf.Path
	var found bool
	err := Select(input, m, func(p jleaf.Path, v jleaf.Value) bool {
		val = jleaf.Value{Kind: v.Kind, Text: mem.S(v.Text.StringCopy())}
		path, found = p.Clone(), true
		return true
	})
	return val, path, found, err
}

// anyKey matches every key.
type anyKey struct{}

func (anyKey) match(jleaf.Key) bool { return true }

// nameSel matches a member key by its decoded name.
type nameSel struct {
	raw  mem.RO // name as escaped by the encoder
	name string
}

func newNameSel(name string) nameSel {
	return nameSel{raw: jleaf.NameKey(name).Name(), name: name}
}

func (n nameSel) match(k jleaf.Key) bool {
	if k.IsIndex() {
		return false
	}
	raw := k.Name()
	if raw.Equal(n.raw) {
		return true
	} else if mem.IndexByte(raw, '\\') < 0 {
		return false // no other spelling is possible
	}
	s, err := k.Unquote()
	return err == nil && s == n.name
}

// indexSel matches any of a list of array offsets.
type indexSel []int

func (ix indexSel) match(k jleaf.Key) bool {
	if !k.IsIndex() {
		return false
	}
	for _, i := range ix {
		if k.Index() == i {
			return true
		}
	}
	return false
}

// sliceSel matches array offsets in the half-open range [lo, hi).
// If hi < 0 the range is unbounded.
type sliceSel struct{ lo, hi int }

func (s sliceSel) match(k jleaf.Key) bool {
	i := k.Index()
	return k.IsIndex() && i >= s.lo && (s.hi < 0 || i < s.hi)
}
