// internal/app/features/errors/errors.go
package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/paygate"
	"github.com/dalemusser/classhub/internal/app/system/reqlog"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Error codes carried in the failure envelope.
const (
	CodeInvalidID   = "invalid_id"
	CodeInvalidBody = "invalid_body"
	CodeValidation  = "validation"
	CodeForbidden   = "forbidden"
	CodeGateway     = "gateway_error"
	CodeStore       = "store_error"
	CodeTimeout     = "timeout"
	CodeUnavailable = "store_unavailable"
)

// ErrorLogger logs a failed request and writes its error envelope.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Fail classifies err and answers with the matching status and code.
// op names the operation for the log line ("insert user").
func (e *ErrorLogger) Fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, body := Classify(err)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("code", body.Code),
		zap.String("request_id", reqlog.ID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		e.Log.Error(op+" failed", fields...)
	} else {
		e.Log.Info(op+" rejected", fields...)
	}
	respond.Error(w, status, body)
}

// Deny is the authz rejection hook: ErrForbidden becomes 403, anything
// else (a failed role lookup) goes through Fail.
func (e *ErrorLogger) Deny(w http.ResponseWriter, r *http.Request, err error) {
	e.Fail(w, r, "policy check", err)
}

// Classify maps err onto an HTTP status and error body.
func Classify(err error) (int, respond.ErrorBody) {
	var verr *inputval.ValidationError
	switch {
	case stderrors.As(err, &verr):
		return http.StatusBadRequest, respond.ErrorBody{
			Code:    CodeValidation,
			Message: "The request document failed validation.",
			Fields:  verr.Fields,
		}
	case stderrors.Is(err, docstore.ErrInvalidID):
		return http.StatusBadRequest, respond.ErrorBody{Code: CodeInvalidID, Message: "The id is not a valid ObjectID."}
	case stderrors.Is(err, inputval.ErrInvalidBody):
		return http.StatusBadRequest, respond.ErrorBody{Code: CodeInvalidBody, Message: "The request body must be a JSON object."}
	case stderrors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, respond.ErrorBody{Code: CodeForbidden, Message: "You are not allowed to perform this action."}
	case stderrors.Is(err, paygate.ErrGateway):
		return http.StatusBadGateway, respond.ErrorBody{Code: CodeGateway, Message: "The payment gateway rejected the request."}
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, respond.ErrorBody{Code: CodeTimeout, Message: "The operation timed out."}
	default:
		return http.StatusInternalServerError, respond.ErrorBody{Code: CodeStore, Message: "A database error occurred."}
	}
}
