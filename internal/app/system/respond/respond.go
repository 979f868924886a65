// Package respond writes the JSON envelope every API route answers with.
//
// Success:
//
//	{ "status":"ok", "data": … }
//
// Failure:
//
//	{ "status":"error", "error": { "code":"…", "message":"…", "fields":{…} } }
package respond

import (
	"encoding/json"
	"net/http"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the top-level response body.
type Envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// okEnvelope keeps "data" present even when the payload is nil, so a
// get-one miss reads as {"status":"ok","data":null}.
type okEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// OK writes a success envelope with the given HTTP status.
func OK(w http.ResponseWriter, status int, data any) {
	write(w, status, okEnvelope{Status: StatusOK, Data: data})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, body ErrorBody) {
	write(w, status, Envelope{Status: StatusError, Error: &body})
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
