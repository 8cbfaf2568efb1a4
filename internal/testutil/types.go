// Package testutil defines support code for unit tests.
package testutil

import (
	"github.com/creachadair/jleaf"
)

// Events scans input and returns a string for each value reported by the
// scanner, formatted as "<path> <kind> <text>", along with the scan error.
func Events(input string) ([]string, error) {
	var out []string
	err := jleaf.Scan(input, func(p jleaf.Path, v jleaf.Value) {
		out = append(out, Event(p, v))
	})
	return out, err
}

// EventsUntil behaves as Events, but stops the scan after n values.
func EventsUntil(input string, n int) ([]string, error) {
	var out []string
	err := jleaf.ScanUntil(input, func(p jleaf.Path, v jleaf.Value) bool {
		out = append(out, Event(p, v))
		return len(out) == n
	})
	return out, err
}

// Event formats a single scanner event.
func Event(p jleaf.Path, v jleaf.Value) string {
	return p.String() + " " + v.Kind.String() + " " + v.Text.StringCopy()
}
