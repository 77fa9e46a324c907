package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// Run executes a single scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s)
	})
}

// RunDir runs every single-scenario *.json file in dir as a subtest, in file
// name order.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s)
		})
	}
}

// RunFlow runs an array file step by step. A failing step stops the flow,
// since later steps depend on its effects.
func RunFlow(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := LoadScenarioArray(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	for _, s := range scenarios {
		if !t.Run(s.Name, func(t *testing.T) { runScenario(t, handler, s) }) {
			return
		}
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	var body io.Reader
	switch {
	case len(s.RequestBody) > 0:
		body = bytes.NewReader(s.RequestBody)
	case s.RequestBodyPath() != "":
		data, err := os.ReadFile(s.RequestBodyPath())
		if err != nil {
			t.Fatalf("[%s] read request file: %v", s.Name, err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, ok := expectedBody(t, s)
	if !ok {
		return
	}
	if s.ResponseSubset {
		AssertJSONSubset(t, s, expected, rec.Body.Bytes())
	} else {
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
	}
}

func expectedBody(t *testing.T, s *Scenario) ([]byte, bool) {
	t.Helper()
	if s.ExpectedBody != nil {
		data, err := json.Marshal(s.ExpectedBody)
		if err != nil {
			t.Fatalf("[%s] encode expectedBody: %v", s.Name, err)
		}
		return data, true
	}
	if p := s.ResponseBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read response file: %v", s.Name, err)
		}
		return data, true
	}
	return nil, false
}
