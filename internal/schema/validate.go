package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes the first constraint a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names ("conversationId"), not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates any contract value and converts the first failure to a ValidationError.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("", "invalid payload: %v", err)
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return invalid(field, "%s is required", field)
	case "min":
		return invalid(field, "%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return invalid(field, "%s must be one of: %s", field, fe.Param())
	default:
		return invalid(field, "%s failed %q validation", field, fe.Tag())
	}
}

// decodeJSON reports malformed bodies and wrong primitive types as ValidationError.
// Unknown fields are ignored.
func decodeJSON(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return invalid("", "request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return invalid("", "request body must be a JSON object")
			}
			return invalid(typeErr.Field, "%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
		}
		return invalid("", "request body must be valid JSON")
	}
	return nil
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int64, reflect.Float64, reflect.Float32:
		return "number"
	default:
		return t.Kind().String()
	}
}

// DecodeChatRequest parses and validates a chat turn. Stream defaults to false.
func DecodeChatRequest(body []byte) (ChatRequest, error) {
	var req ChatRequest
	if err := decodeJSON(body, &req); err != nil {
		return ChatRequest{}, err
	}
	if err := Struct(req); err != nil {
		return ChatRequest{}, err
	}
	return req, nil
}

// DecodeAnalyzeRequest parses a transcript payload. "transcript" wins over the legacy
// "prompt" field when both are present.
func DecodeAnalyzeRequest(body []byte) (AnalyzeRequest, error) {
	var raw struct {
		Transcript *string `json:"transcript"`
		Prompt     *string `json:"prompt"`
	}
	if err := decodeJSON(body, &raw); err != nil {
		return AnalyzeRequest{}, err
	}

	var req AnalyzeRequest
	switch {
	case raw.Transcript != nil:
		req.Transcript = *raw.Transcript
	case raw.Prompt != nil:
		req.Transcript = *raw.Prompt
	}
	if req.Transcript == "" {
		return AnalyzeRequest{}, invalid("transcript", "transcript is required and must be at least %d characters", MinTranscriptLength)
	}
	if err := Struct(req); err != nil {
		return AnalyzeRequest{}, err
	}
	return req, nil
}
