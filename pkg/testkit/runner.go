package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// HandlerFactory builds a fresh handler for one scenario so scenarios do
// not share state.
type HandlerFactory func(t *testing.T) http.Handler

// Run loads the scenario at path and runs it as a subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		RunScenario(t, handler, s)
	})
}

// RunDir runs every scenario in dir as a subtest, each against a handler
// from newHandler. Files that fail to load are reported as errors.
func RunDir(t *testing.T, newHandler HandlerFactory, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, newHandler(t), s)
		})
	}
}

// RunScenario executes the steps of s in order. Cookies set by one step
// are sent with the next; cookies cleared by a response are dropped. A
// failing step stops the scenario.
func RunScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	jar := map[string]*http.Cookie{}
	for _, st := range s.Steps {
		if !runStep(t, handler, s, st, jar) {
			return
		}
	}
}

func runStep(t *testing.T, handler http.Handler, s *Scenario, st Step, jar map[string]*http.Cookie) bool {
	t.Helper()
	label := s.Name + " / " + st.Name

	body, err := s.RequestBody(st)
	if err != nil {
		t.Fatalf("[%s] read request body: %v", label, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(st.Method, st.URL, reader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range st.Headers {
		req.Header.Set(k, v)
	}
	for _, c := range jar {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	ok := AssertStatusCode(t, label, st.ExpectedCode, rec.Code, rec.Body.Bytes())

	expected, err := s.ExpectedResponse(st)
	if err != nil {
		t.Fatalf("[%s] read expected response: %v", label, err)
	}
	if expected != nil {
		ok = AssertJSONSubset(t, label, expected, rec.Body.Bytes()) && ok
	}

	set := rec.Result().Cookies()
	ok = AssertCookies(t, label, st.Cookies, set) && ok

	for _, c := range set {
		if c.MaxAge < 0 {
			delete(jar, c.Name)
			continue
		}
		jar[c.Name] = c
	}
	return ok
}
