// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/creachadair/jleaf/ast"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func TestPath(t *testing.T) {
	v, err := ast.Parse(testJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	list := v.(*ast.Object).Find("list").Value.(*ast.Array)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{11}, v, true},
		{"BadElement", []any{3.5}, v, true},

		{"ArrayPos", []any{"list", 1}, list.Values[1], false},
		{"ArrayNeg", []any{"list", -1}, list.Values[1], false},
		{"ArrayRange", []any{"o", 25}, v, true},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), false},
		{"Deep", []any{"list", 0, "x"}, ast.Number("1"), false},
		{"NotObject", []any{"o", "x"}, v, true},

		{"FuncArray", []any{"o", testPathFunc}, ast.Number("2"), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Number("3"), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, v, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ast.Path(v, tc.path...)
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Path: unexpected error: %v", err)
				}
			} else if tc.fail {
				t.Fatalf("Path: got %v, want error", got.JSON())
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Wrong result (-got, +want):\n%s", diff)
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	if ln, ok := v.(interface{ Len() int }); ok {
		return ast.Number(fmt.Sprint(ln.Len())), nil
	}
	return nil, errors.New("not a thing with length")
}

func TestNumber(t *testing.T) {
	if z, err := ast.Number("-25").Int64(); err != nil || z != -25 {
		t.Errorf("Int64: got %v, %v; want -25, nil", z, err)
	}
	if f, err := ast.Number("0.5e1").Float64(); err != nil || f != 5 {
		t.Errorf("Float64: got %v, %v; want 5, nil", f, err)
	}
	if _, err := ast.Number("01x").Int64(); err == nil {
		t.Error("Int64(01x): got nil, want error")
	}
}
