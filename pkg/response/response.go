// Package response writes the JSON envelope shared by handlers and
// middleware: {"status":..,"message":..,"data":..,"errors":..}.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Write sends body with the given status code.
func Write(w http.ResponseWriter, status int, body Envelope) {
	JSON(w, status, body)
}

// JSON sends v as-is, for the few responses that are not enveloped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Status: status, Message: message})
}

// NotFound is the handler for unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed is the handler for a known path with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
