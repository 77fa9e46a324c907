package testkit

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual against expected after normalising
// both through JSON, so key order and whitespace never matter.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	expVal, actVal, ok := decodePair(t, scenario, expected, actual)
	if !ok {
		return
	}
	assert.Equal(t, expVal, actVal, "[%s] response body mismatch", scenario.Name)
}

// AssertJSONSubset checks that every key in expected is present in actual
// with an equal value. Arrays must match in length; their elements are
// compared as subsets too.
func AssertJSONSubset(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	expVal, actVal, ok := decodePair(t, scenario, expected, actual)
	if !ok {
		return
	}
	if diffs := DiffJSON("", expVal, actVal); len(diffs) > 0 {
		t.Errorf("[%s] response body mismatch:\n%s\nbody: %s",
			scenario.Name, strings.Join(diffs, "\n"), string(actual))
	}
}

func decodePair(t *testing.T, scenario *Scenario, expected, actual []byte) (any, any, bool) {
	t.Helper()
	var expVal, actVal any

	require.NoError(t, json.Unmarshal(expected, &expVal),
		"[%s] expected body is not valid JSON", scenario.Name)

	if !assert.NoError(t, json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual)) {
		return nil, nil, false
	}
	return expVal, actVal, true
}

// DiffJSON lists where actual fails to contain expected. Object keys absent
// from expected are ignored.
func DiffJSON(path string, expected, actual any) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		for k, ev := range exp {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, ev, av)...)
		}
	case []any:
		act, ok := actual.([]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected array, got %T", keyPath(path), actual))
		}
		if len(exp) != len(act) {
			diffs = append(diffs, fmt.Sprintf("  %s: array length expected=%d actual=%d", keyPath(path), len(exp), len(act)))
		}
		for i := 0; i < len(exp) && i < len(act); i++ {
			diffs = append(diffs, DiffJSON(fmt.Sprintf("%s[%d]", keyPath(path), i), exp[i], act[i])...)
		}
	default:
		if fmt.Sprintf("%v", expected) != fmt.Sprintf("%v", actual) {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %v\n    + %v", keyPath(path), expected, actual))
		}
	}
	return diffs
}

func keyPath(path string) string {
	if path == "" {
		return "root"
	}
	return strings.TrimPrefix(path, ".")
}
