package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mochi-hq/mochi-api/internal/redact"
)

// ErrorType is the externally visible classification of an error
// response. The set is closed; new error kinds must map onto one of
// these values.
type ErrorType string

// Externally visible error types.
const (
	ErrorTypeUnauthorized ErrorType = "Unauthorized"
	ErrorTypeNotFound     ErrorType = "NotFound"
	ErrorTypeRequest      ErrorType = "Request"
	ErrorTypeNotComplete  ErrorType = "NotComplete"
	ErrorTypeInternal     ErrorType = "Internal"
)

// ErrorBody is the error payload carried inside the envelope.
type ErrorBody struct {
	Type             ErrorType   `json:"type"`
	Code             *string     `json:"code,omitempty"`
	Message          string      `json:"message"`
	AdditionalFields *OrderedMap `json:"additionalFields"`
}

// NewErrorBody creates an error payload with an empty additionalFields
// object so the serialized shape is always complete.
func NewErrorBody(errType ErrorType, message string) *ErrorBody {
	return &ErrorBody{
		Type:             errType,
		Message:          message,
		AdditionalFields: NewOrderedMap(),
	}
}

// Envelope is the single outer JSON shape wrapping every success or
// error response. It is constructed once per request, never mutated,
// and serialized exactly once as the terminal response body.
type Envelope struct {
	Status   int            `json:"status"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Data     any            `json:"data,omitempty"`
	Error    *ErrorBody     `json:"error,omitempty"`
}

// RespondWithData writes a success envelope with the given status code.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeEnvelope(w, Envelope{Status: status, Data: data}, status)
}

// RespondWithError writes an error envelope with the given status code.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, body *ErrorBody) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"error_type", body.Type,
		"message", body.Message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	writeEnvelope(w, Envelope{Status: status, Error: body}, status)
}

// RespondWithErrorAndLog writes an error envelope and logs the detailed
// internal error. The raw error string never appears in the response;
// it is redacted into the log line only.
//
// Log level strategy: 5xx at ERROR, 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	body *ErrorBody,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_type", string(body.Type)),
		slog.String("user_message", body.Message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_internal_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeEnvelope(w, Envelope{Status: status, Error: body}, status)
}

// writeEnvelope serializes the envelope as the terminal response body.
func writeEnvelope(w http.ResponseWriter, envelope Envelope, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
