package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// CallerHeader is the identity header read by the authz policy.
const CallerHeader = "X-User-Email"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// JSONRequest builds a request whose body is body encoded as JSON.
// A string body is sent verbatim.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AsCaller sets the caller identity header.
func AsCaller(r *http.Request, email string) *http.Request {
	r.Header.Set(CallerHeader, email)
	return r
}

// Envelope is the decoded response body of an API route.
type Envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// DecodeEnvelope parses rec's body and, when out is non-nil, unmarshals
// the data payload into it.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, env.Data)
		}
	}
	return env
}

// AssertStatus fails the test when rec has an unexpected status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status code: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// AssertErrorCode fails the test unless rec carries an error envelope with
// the given code.
func AssertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	env := DecodeEnvelope(t, rec, nil)
	if env.Status != "error" || env.Error == nil || env.Error.Code != code {
		t.Fatalf("expected error code %q, got body %s", code, rec.Body.String())
	}
}
