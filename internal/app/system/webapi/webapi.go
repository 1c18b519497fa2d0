// Package webapi holds the small helpers every JSON handler shares:
// rendering a response, decoding a body, and mapping store errors to
// HTTP statuses.
package webapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON body for every error status.
type errorResponse struct {
	Error string `json:"error"`
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Decode reads the request body into v. It rejects unknown fields so a
// typo in a client payload fails loudly instead of silently no-oping.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusError pairs an HTTP status with an error for handlers that
// want to bubble a specific status out of helper code.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// WithStatus wraps err so ServeError maps it to the given status.
func WithStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}

// ServeError maps err onto an HTTP status and writes the JSON error
// body. notFound and conflict are the caller's sentinel errors (either
// may be nil). Unmapped errors become 500 and are logged; mapped ones
// are the client's fault and only logged at debug.
func ServeError(w http.ResponseWriter, log *zap.Logger, err error, notFound, conflict error) {
	var se *statusError
	switch {
	case errors.As(err, &se):
		Error(w, se.status, se.err.Error())
	case notFound != nil && errors.Is(err, notFound):
		Error(w, http.StatusNotFound, err.Error())
	case conflict != nil && errors.Is(err, conflict):
		Error(w, http.StatusConflict, err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
