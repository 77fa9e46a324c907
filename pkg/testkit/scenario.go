// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario describes:
//   - the HTTP request to fire (method, URL, inline body or body file, headers)
//   - the expected HTTP status code
//   - the expected response body, compared exactly or as a subset
//
// Scenario files live in testdata/ next to the *_test.go that runs them:
//
//	testdata/
//	  health.json              ← one scenario
//	  booking_flow.json        ← an array of scenarios run in order
//	  menu_res.json            ← expected response body
//
// A flow shares one handler, so later steps see what earlier steps wrote:
//
//	func TestBookingFlow(t *testing.T) {
//	    testkit.RunFlow(t, newHandler(t), "testdata/booking_flow.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /reservations/1
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline JSON body
	RequestFileName string            `json:"requestFileName"` // body file, relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode       int    `json:"expectedCode"`
	ExpectedStatusCode int    `json:"expectedStatusCode"` // alias for expectedCode
	ResponseFileName   string `json:"responseFileName"`   // expected body file
	ExpectedBody       any    `json:"expectedBody"`       // inline expected body
	// ResponseSubset compares only the keys present in the expected body, so
	// generated values like ids and timestamps can be left out.
	ResponseSubset bool `json:"responseSubset"`

	dir string // directory of the scenario file
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadScenarioArray reads an ordered list of scenarios from one JSON file.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	for i, s := range scenarios {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %d in %q: %w", i, abs, err)
		}
	}
	return scenarios, nil
}

// LoadAllFromDir loads every *.json file in dir that holds a single scenario,
// in file name order. Files that fail to parse are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}
	sort.Strings(entries)

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func read(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if len(s.RequestBody) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("requestBody and requestFileName are mutually exclusive")
	}
	return nil
}

// RequestBodyPath returns the absolute path to the request body file, or ""
// when RequestFileName is not set.
func (s *Scenario) RequestBodyPath() string { return s.resolve(s.RequestFileName) }

// ResponseBodyPath returns the absolute path to the expected response file,
// or "" when ResponseFileName is not set.
func (s *Scenario) ResponseBodyPath() string { return s.resolve(s.ResponseFileName) }

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
