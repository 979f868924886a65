// Package inputval checks request documents against the entity schemas in
// internal/domain/models.
//
// Documents stay free-form: Document keeps every field the caller sent, and
// Check only constrains the fields a schema names.
package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson"
)

// MaxBodyBytes caps request bodies read by Document.
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned when the body is not a single JSON object.
var ErrInvalidBody = errors.New("request body must be a JSON object")

// ValidationError lists the fields that failed their schema rules.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Document reads the request body as a single JSON object whatever the
// declared content type. Numbers are kept as json.Number so integers are
// stored as integers at full precision. A caller-supplied _id is dropped;
// ids are store-generated.
func Document(r *http.Request) (bson.M, error) {
	if r.Body == nil {
		return nil, ErrInvalidBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.UseNumber()
	var doc bson.M
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return nil, ErrInvalidBody
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidBody
	}
	delete(doc, "_id")
	return doc, nil
}

// Check decodes doc into schema (a pointer to a models struct, matched by
// json tag) and runs its validate rules. Types must match exactly: a
// numeric string is not a number and a number is not a string, the same
// rules the collection validators apply. Fields the schema does not name
// are ignored.
func Check(doc map[string]any, schema any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		DecodeHook: mapstructure.DecodeHookFuncType(rejectNumberAsString),
		Result:     schema,
	})
	if err != nil {
		return fmt.Errorf("inputval: build decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return decodeError(err)
	}
	return Struct(schema)
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

// rejectNumberAsString stops json.Number (a string kind) from filling a
// string field.
func rejectNumberAsString(from, to reflect.Type, data any) (any, error) {
	if from == jsonNumberType && to.Kind() == reflect.String {
		return nil, fmt.Errorf("expected a string, got number %v", data)
	}
	return data, nil
}

// Struct runs the validate rules of an already-typed value.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("inputval: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}

// decodeError turns mapstructure type mismatches into per-field messages.
func decodeError(err error) error {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return &ValidationError{Fields: map[string]string{"document": err.Error()}}
	}
	fields := make(map[string]string, len(merr.Errors))
	for _, msg := range merr.Errors {
		name := "document"
		if i := strings.Index(msg, "'"); i >= 0 {
			if j := strings.Index(msg[i+1:], "'"); j >= 0 {
				name = msg[i+1 : i+1+j]
			}
		}
		fields[name] = "has the wrong type"
	}
	return &ValidationError{Fields: fields}
}
