package jleaf

import (
	"fmt"

	"go4.org/mem"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// locate returns the line and column of the byte at offset pos of input.
// An offset at or past the end of the input is positioned just after the
// last byte.
func locate(input mem.RO, pos int) LineCol {
	if pos > input.Len() {
		pos = input.Len()
	}
	lc := LineCol{Line: 1}
	head := input.SliceTo(pos)
	for {
		i := mem.IndexByte(head, '\n')
		if i < 0 {
			break
		}
		lc.Line++
		head = head.SliceFrom(i + 1)
	}
	lc.Column = head.Len()
	return lc
}
