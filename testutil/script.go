// Package testutil provides shared test helpers for lambdac: a
// table-driven script runner that executes end-to-end command-sequence
// scenarios (one command sequence in, one expected output line per
// command out), and a go-cmp-backed structural equality helper for
// terms and types, centralizing assertion helpers used across
// package-level _test.go files.
package testutil

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/internal/driver"
	"github.com/lambdac/lambdac/internal/term"
)

// Script is one end-to-end scenario: a single ';'-terminated source
// string run against a fresh Driver at Level/Mode, whose per-command
// output lines must match Want in order. A Want entry of "" combined
// with WantErr[i] true asserts that command failed instead.
type Script struct {
	Name    string
	Level   calculi.Level
	Mode    calculi.Mode
	Source  string
	Want    []string
	WantErr []bool // optional; nil means no command is expected to fail
}

// Run parses and executes s.Source against a fresh Driver and asserts
// every command's outcome matches s.Want/s.WantErr.
func Run(t *testing.T, s Script) {
	t.Helper()
	term.ResetFreshCounter()

	d := driver.New(s.Level, s.Mode)
	results, err := d.RunSource(s.Source, s.Name)
	require.NoError(t, err, "parsing %s", s.Name)
	require.Len(t, results, len(s.Want), "%s: command count", s.Name)

	for i, res := range results {
		wantErr := s.WantErr != nil && s.WantErr[i]
		if wantErr {
			require.Error(t, res.Err, "%s: command %d should have failed", s.Name, i)
			continue
		}
		require.NoError(t, res.Err, "%s: command %d", s.Name, i)
		require.Equal(t, s.Want[i], res.Line, "%s: command %d", s.Name, i)
	}
}

// RunAll runs every Script in scripts as its own subtest.
func RunAll(t *testing.T, scripts []Script) {
	t.Helper()
	for _, s := range scripts {
		s := s
		t.Run(s.Name, func(t *testing.T) { Run(t, s) })
	}
}

// TermDiff returns a human-readable structural diff between two terms
// using go-cmp, for assertions where a plain reflect.DeepEqual/
// testify comparison would be unreadable on failure (deeply nested
// ASTs). An empty string means the terms are equal.
func TermDiff(want, got term.Term) string {
	return cmp.Diff(want, got, cmp.Exporter(func(reflect.Type) bool { return true }))
}

// TypeDiff is TermDiff's analogue for Type values.
func TypeDiff(want, got term.Type) string {
	return cmp.Diff(want, got, cmp.Exporter(func(reflect.Type) bool { return true }))
}

// RequireTermEqual fails the test with a structural diff if want and
// got are not deeply equal.
func RequireTermEqual(t *testing.T, want, got term.Term) {
	t.Helper()
	if diff := TermDiff(want, got); diff != "" {
		t.Fatalf("term mismatch (-want +got):\n%s", diff)
	}
}

// RequireTypeEqual fails the test with a structural diff if want and
// got are not deeply equal.
func RequireTypeEqual(t *testing.T, want, got term.Type) {
	t.Helper()
	if diff := TypeDiff(want, got); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
}
