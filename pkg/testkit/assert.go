package testkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertStatusCode checks the response code and prints the body on
// mismatch.
func AssertStatusCode(t *testing.T, label string, want, got int, body []byte) bool {
	t.Helper()
	return assert.Equal(t, want, got, "[%s] HTTP status code mismatch\nbody: %s", label, body)
}

// AssertJSONSubset checks that actual contains expected. See Step.Response
// for the matching rules.
func AssertJSONSubset(t *testing.T, label string, expected, actual []byte) bool {
	t.Helper()

	var expVal, actVal any
	if !assert.NoError(t, json.Unmarshal(expected, &expVal), "[%s] expected response is not valid JSON", label) {
		return false
	}
	if !assert.NoError(t, json.Unmarshal(actual, &actVal), "[%s] actual response is not valid JSON\nbody: %s", label, actual) {
		return false
	}

	diffs := DiffJSON("", expVal, actVal)
	if len(diffs) == 0 {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("[%s] response body mismatch", label),
		"%s\nbody: %s", strings.Join(diffs, "\n"), actual)
}

// AssertCookies checks each named cookie was set or cleared by the
// response.
func AssertCookies(t *testing.T, label string, want map[string]string, got []*http.Cookie) bool {
	t.Helper()

	byName := make(map[string]*http.Cookie, len(got))
	for _, c := range got {
		byName[c.Name] = c
	}

	ok := true
	for name, state := range want {
		c, found := byName[name]
		if !assert.True(t, found, "[%s] cookie %q not in response", label, name) {
			ok = false
			continue
		}
		switch state {
		case CookieSet:
			ok = assert.NotEmpty(t, c.Value, "[%s] cookie %q has no value", label, name) && ok
			ok = assert.GreaterOrEqual(t, c.MaxAge, 0, "[%s] cookie %q is expired", label, name) && ok
		case CookieCleared:
			ok = assert.Less(t, c.MaxAge, 0, "[%s] cookie %q was not cleared", label, name) && ok
		}
	}
	return ok
}

// DiffJSON returns the places where actual does not contain expected, one
// human-readable line each.
func DiffJSON(path string, expected, actual any) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		keys := make([]string, 0, len(exp))
		for k := range exp {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, exp[k], av)...)
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
	case string:
		if exp == Wildcard {
			if actual == nil {
				diffs = append(diffs, fmt.Sprintf("  %s: expected a value, got null", keyPath(path)))
			}
			return diffs
		}
		if actual != expected {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %q\n    + %v", keyPath(path), exp, actual))
		}
	default:
		if expected != actual {
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
