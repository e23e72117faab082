// Package testkit drives HTTP API tests from JSON scenario files.
//
// A scenario is an ordered list of steps run against one handler. Cookies
// set by a response are sent with every later step, so a scenario can
// register, log in and then call protected routes.
//
//	testdata/scenarios/
//	  booking_flow.json        scenario
//	  register_req.json        request body referenced by a step
//	  services_res.json        expected response referenced by a step
//
// Example _test.go:
//
//	func TestScenarios(t *testing.T) {
//	    testkit.RunDir(t, func(t *testing.T) http.Handler { return newHandler(t) }, "testdata/scenarios")
//	}
package testkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is one multi-step API test loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`

	dir string
}

// Step is a single request and the assertions on its response.
type Step struct {
	Name string `json:"name"`

	Method          string            `json:"method"`
	URL             string            `json:"url"`
	Headers         map[string]string `json:"headers"`
	Body            json.RawMessage   `json:"body"`
	RequestFileName string            `json:"requestFileName"`

	ExpectedCode int `json:"expectedCode"`
	// Response is matched as a subset of the actual body: extra keys in
	// the actual body are ignored, arrays must have equal length, and the
	// string "<any>" matches any non-null value.
	Response         json.RawMessage `json:"response"`
	ResponseFileName string          `json:"responseFileName"`
	// Cookies maps a cookie name to "set" or "cleared".
	Cookies map[string]string `json:"cookies"`
}

const (
	CookieSet     = "set"
	CookieCleared = "cleared"

	// Wildcard matches any non-null JSON value.
	Wildcard = "<any>"
)

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// LoadAllFromDir loads every scenario file in dir. Files ending in
// _req.json or _res.json are request and response bodies, not scenarios.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{fmt.Errorf("testkit: glob %q: %w", dir, err)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("testkit: no scenario files found in %q", dir))
	}
	return scenarios, errs
}

func isBodyFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "_req.json") || strings.HasSuffix(base, "_res.json")
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if len(s.Steps) == 0 {
		return errors.New("at least one step is required")
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		if st.URL == "" {
			return fmt.Errorf("steps[%d].url is required", i)
		}
		if st.ExpectedCode == 0 {
			return fmt.Errorf("steps[%d].expectedCode is required", i)
		}
		if len(st.Body) > 0 && st.RequestFileName != "" {
			return fmt.Errorf("steps[%d]: body and requestFileName are exclusive", i)
		}
		if len(st.Response) > 0 && st.ResponseFileName != "" {
			return fmt.Errorf("steps[%d]: response and responseFileName are exclusive", i)
		}
		for name, want := range st.Cookies {
			if want != CookieSet && want != CookieCleared {
				return fmt.Errorf("steps[%d].cookies[%s]: want %q or %q", i, name, CookieSet, CookieCleared)
			}
		}
		if st.Method == "" {
			st.Method = http.MethodGet
		}
		st.Method = strings.ToUpper(st.Method)
		if st.Name == "" {
			st.Name = fmt.Sprintf("%02d %s %s", i+1, st.Method, st.URL)
		}
	}
	return nil
}

// RequestBody returns the step's request body, read from requestFileName
// when set. Nil means no body.
func (s *Scenario) RequestBody(st Step) ([]byte, error) {
	if st.RequestFileName != "" {
		return os.ReadFile(s.resolve(st.RequestFileName))
	}
	if len(st.Body) == 0 {
		return nil, nil
	}
	return st.Body, nil
}

// ExpectedResponse returns the step's expected body, read from
// responseFileName when set. Nil means the body is not checked.
func (s *Scenario) ExpectedResponse(st Step) ([]byte, error) {
	if st.ResponseFileName != "" {
		return os.ReadFile(s.resolve(st.ResponseFileName))
	}
	if len(st.Response) == 0 {
		return nil, nil
	}
	return st.Response, nil
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
