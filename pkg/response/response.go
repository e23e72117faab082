// Package response writes the JSON bodies shared by every endpoint.
//
// Success bodies are endpoint-specific objects ({"ok":true,...}); failures
// always use {"error": "..."} with an optional "fields" map for validation.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

// ErrorBody is the failure shape.
type ErrorBody struct {
	Error  string          `json:"error"`
	Fields validate.Errors `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// OK writes 200 {"ok":true} merged with extra.
func OK(w http.ResponseWriter, extra map[string]interface{}) {
	body := map[string]interface{}{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// ValidationError writes 400 with field-level messages.
func ValidationError(w http.ResponseWriter, errs validate.Errors) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "Validation failed", Fields: errs})
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// ServerError never includes the underlying cause.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Server error")
}
