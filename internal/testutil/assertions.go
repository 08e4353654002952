package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertRoute checks that the console output reports path from start to dest.
func AssertRoute(t *testing.T, result *HarnessResult, start, dest string, path ...string) {
	t.Helper()

	expected := fmt.Sprintf("Minimal Path from %s to %s: %v", start, dest, path)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected route %q was not found in output:\n%s", expected, result.Output,
	)
}

// AssertNoRoute checks that the console output reports dest as not reached.
func AssertNoRoute(t *testing.T, result *HarnessResult, start, dest string) {
	t.Helper()

	expected := fmt.Sprintf("Minimal Path from %s to %s: None", start, dest)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected %q in output:\n%s", expected, result.Output,
	)
}

// AssertHighlight checks which destination was highlighted.
func AssertHighlight(t *testing.T, result *HarnessResult, dest string) {
	t.Helper()

	expected := fmt.Sprintf("Highlighted route to %s:", dest)
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected highlight of %s in output:\n%s", dest, result.Output,
	)
}
