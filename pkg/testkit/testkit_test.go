package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionHandler is a tiny cookie-session API for exercising the runner.
func sessionHandler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ User string }
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: in.User, MaxAge: 60})
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "token": "t-" + in.User, "ttl": 60})
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("sid")
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": c.Value, "roles": []string{"customer"}, "since": 2026})
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	return mux
}

func TestRunDirCarriesCookies(t *testing.T) {
	RunDir(t, func(*testing.T) http.Handler { return sessionHandler() }, "testdata")
}

func TestRun(t *testing.T) {
	Run(t, sessionHandler(), filepath.Join("testdata", "session_flow.json"))
}

func TestLoadAllFromDirSkipsBodyFiles(t *testing.T) {
	scenarios, errs := LoadAllFromDir("testdata")
	require.Empty(t, errs)
	require.Len(t, scenarios, 1)

	s := scenarios[0]
	assert.Equal(t, "session flow", s.Name)
	assert.Len(t, s.Steps, 5)
	assert.Equal(t, "01 GET /me", s.Steps[0].Name)

	body, err := s.RequestBody(s.Steps[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"anu"}`, string(body))

	body, err = s.RequestBody(s.Steps[0])
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestLoadScenarioValidation(t *testing.T) {
	cases := map[string]string{
		"no name":      `{"steps":[{"url":"/","expectedCode":200}]}`,
		"no steps":     `{"name":"x"}`,
		"no url":       `{"name":"x","steps":[{"expectedCode":200}]}`,
		"no code":      `{"name":"x","steps":[{"url":"/"}]}`,
		"both bodies":  `{"name":"x","steps":[{"url":"/","expectedCode":200,"body":{},"requestFileName":"a.json"}]}`,
		"cookie state": `{"name":"x","steps":[{"url":"/","expectedCode":200,"cookies":{"sid":"maybe"}}]}`,
		"malformed":    `{`,
	}

	dir := t.TempDir()
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "scenario.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := LoadScenario(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadAllFromDirEmpty(t *testing.T) {
	_, errs := LoadAllFromDir(t.TempDir())
	assert.Len(t, errs, 1)
}

func TestDiffJSON(t *testing.T) {
	decode := func(s string) any {
		var v any
		require.NoError(t, json.Unmarshal([]byte(s), &v))
		return v
	}

	assert.Empty(t, DiffJSON("", decode(`{"a":1}`), decode(`{"a":1,"b":2}`)))
	assert.Empty(t, DiffJSON("", decode(`{"id":"<any>"}`), decode(`{"id":"65f0c1"}`)))
	assert.Empty(t, DiffJSON("", decode(`{"orders":[{"status":"pending"}]}`),
		decode(`{"orders":[{"status":"pending","orderId":"x"}]}`)))

	assert.Len(t, DiffJSON("", decode(`{"id":"<any>"}`), decode(`{"id":null}`)), 1)
	assert.Len(t, DiffJSON("", decode(`{"a":1}`), decode(`{"a":"1"}`)), 1)
	assert.Len(t, DiffJSON("", decode(`{"a":1}`), decode(`{}`)), 1)
	assert.Len(t, DiffJSON("", decode(`[1,2]`), decode(`[1]`)), 1)
	assert.Len(t, DiffJSON("", decode(`{"a":{}}`), decode(`{"a":[]}`)), 1)
	assert.Len(t, DiffJSON("", decode(`{"a":"x","b":true}`), decode(`{"a":"y","b":false}`)), 2)
}

func TestAssertCookies(t *testing.T) {
	got := []*http.Cookie{
		{Name: "sid", Value: "abc", MaxAge: 60},
		{Name: "old", MaxAge: -1},
	}
	assert.True(t, AssertCookies(t, "cookies", map[string]string{"sid": CookieSet, "old": CookieCleared}, got))
}
