// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "scorebox/internal/platform/errors"
	pnet "scorebox/internal/platform/net"
)

// Envelope is the standard response body for all endpoints.
// Exactly one of Response or Error is set, keyed by whether Code is an
// error status
type Envelope struct {
	Response any `json:"response,omitempty"`
	Error    any `json:"error,omitempty"`
	Code     int `json:"code"`
}

// ErrorText holds the canonical text for error status codes carried on the wire
var ErrorText = map[int]string{
	stdhttp.StatusBadRequest:          "Bad Request",
	stdhttp.StatusForbidden:           "Forbidden",
	stdhttp.StatusNotFound:            "Not Found",
	stdhttp.StatusUnprocessableEntity: "Invalid Request",
	stdhttp.StatusInternalServerError: "Internal Server Error",
}

// IsErrorCode reports whether code is one of the error statuses the wire
// envelope reports under "error"
func IsErrorCode(code int) bool {
	_, ok := ErrorText[code]
	return ok
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Wrap builds the wire envelope for a (result, code) pair.
// Error codes carry the result (or the canonical status text when the
// result is empty) under "error"; everything else goes under "response"
func Wrap(result any, code int) Envelope {
	if text, isErr := ErrorText[code]; isErr {
		body := result
		if body == nil || body == "" {
			body = text
		}
		return Envelope{Error: body, Code: code}
	}
	return Envelope{Response: result, Code: code}
}

// Reply writes a (result, code) pair as the wire envelope with HTTP status = code
func Reply(w stdhttp.ResponseWriter, r *stdhttp.Request, result any, code int) {
	if reqID := pnet.RequestID(r.Context()); reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}
	JSON(w, code, Wrap(result, code))
}

// RespondError maps a project error onto the wire envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	Reply(w, r, wr.Message, status)
}

// NotFound is the router fallback for unknown paths
func NotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	Reply(w, r, nil, stdhttp.StatusNotFound)
}

// MethodNotAllowed maps unsupported verbs to the same wire shape.
// The method surface is POST only, so anything else is a bad request
func MethodNotAllowed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	Reply(w, r, nil, stdhttp.StatusBadRequest)
}
