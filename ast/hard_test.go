// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jleaf"
	"github.com/creachadair/jleaf/ast"
)

// The cases are those of the JSONTestSuite described by the article "Parsing
// JSON is a Minefield", https://seriot.ch/projects/parsing_json.html. Fetch
// https://github.com/nst/JSONTestSuite and point the flag at its
// test_parsing directory to run them.
var suiteDir = flag.String("json-test-suite", "",
	"Directory of JSONTestSuite test_parsing cases")

// decodedLeaves counts the scalar values of a document decoded by
// encoding/json, including the values of duplicate keys.
func decodedLeaves(dec *json.Decoder) (int, error) {
	tok, err := dec.Token()
	if err != nil {
		return 0, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return 1, nil
	}
	var n int
	for dec.More() {
		if d == '{' {
			if _, err := dec.Token(); err != nil { // member name
				return 0, err
			}
		}
		k, err := decodedLeaves(dec)
		if err != nil {
			return 0, err
		}
		n += k
	}
	_, err = dec.Token() // closing delimiter
	return n, err
}

func TestJSONTestSuite(t *testing.T) {
	if *suiteDir == "" {
		t.Skip("Skipping test suite because --json-test-suite is not set")
	}
	files, err := filepath.Glob(filepath.Join(*suiteDir, "*.json"))
	if err != nil {
		t.Fatalf("Listing test cases: %v", err)
	} else if len(files) == 0 {
		t.Fatalf("No test cases found in %q", *suiteDir)
	}

	var numYes, numNo, numAccepted int
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Read test case: %v", err)
		}
		input := string(data)

		switch tag, _, _ := strings.Cut(name, "_"); tag {
		case "y":
			numYes++
			t.Run(name, func(t *testing.T) {
				var got int
				if err := jleaf.Scan(input, func(jleaf.Path, jleaf.Value) { got++ }); err != nil {
					t.Fatalf("Scan: unexpected error: %v", err)
				}
				want, err := decodedLeaves(json.NewDecoder(strings.NewReader(input)))
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if got != want {
					t.Errorf("Scan reported %d values, encoding/json found %d", got, want)
				}
				if _, err := ast.Parse(input); err != nil {
					t.Errorf("Parse: unexpected error: %v", err)
				}
			})

		case "n":
			// The scanner accepts comments, trailing commas in objects, and
			// number text that is not validated, so some of these parse.
			numNo++
			if _, err := ast.Parse(input); err == nil {
				numAccepted++
				t.Logf("Accepted %s: %#q", name, input)
			}
		}
	}
	t.Logf("Ran %d positive cases; %d of %d negative cases accepted", numYes, numAccepted, numNo)
}
