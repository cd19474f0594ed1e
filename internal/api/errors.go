package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/domain"
	"github.com/mochi-hq/mochi-api/internal/platform/logicapi"
	"github.com/mochi-hq/mochi-api/internal/service/auth"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// Application-level errors. Handlers wrap lower-layer errors with %w;
// StatusCode and EnvelopeError recurse through the chain, so an outer
// error delegates its mapping to the inner decision instead of
// recomputing it.
var (
	// ErrBadRequest is returned for structurally invalid input.
	ErrBadRequest = errors.New("bad request")

	// ErrNotImplemented is returned for operations not yet available.
	ErrNotImplemented = errors.New("not yet implemented")
)

// NotFoundError is returned when a requested resource does not exist.
// The condition it was looked up by is echoed in the response's
// additionalFields for diagnostics.
type NotFoundError struct {
	Resource  string
	Condition domain.Condition
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Condition.IsEmpty() {
		return fmt.Sprintf("resource %s not found", e.Resource)
	}
	return fmt.Sprintf("resource %s not found %s", e.Resource, e.Condition)
}

// NewNotFoundError creates a NotFoundError for the given resource.
func NewNotFoundError(resource string, condition domain.Condition) *NotFoundError {
	return &NotFoundError{Resource: resource, Condition: condition}
}

// StatusCode maps any error to its HTTP status code. The mapping is
// total: every known kind has an explicit entry and everything else is
// an internal server error. A wrapped error yields the inner error's
// code.
func StatusCode(err error) int {
	var notFoundErr *NotFoundError

	switch {
	case errors.Is(err, auth.ErrInvalidAuthentication):
		return http.StatusUnauthorized

	case errors.As(err, &notFoundErr),
		store.IsNotFound(err),
		errors.Is(err, logicapi.ErrLogicNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrCardNotExists),
		errors.Is(err, store.ErrLogicAlreadyLinked):
		return http.StatusBadRequest

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// ErrNotImplemented, persistence I/O failures and anything
	// unclassified are internal server errors.
	default:
		return http.StatusInternalServerError
	}
}

// EnvelopeError maps any error to its externally visible error payload.
// Only domain-specific kinds carry a detailed message; internal
// failures always render the same generic string and their cause is
// logged, never serialized.
func EnvelopeError(err error) *shared.ErrorBody {
	var notFoundErr *NotFoundError

	switch {
	case errors.Is(err, auth.ErrInvalidAuthentication):
		return shared.NewErrorBody(shared.ErrorTypeUnauthorized, "Invalid authentication.")

	case errors.As(err, &notFoundErr):
		body := shared.NewErrorBody(
			shared.ErrorTypeNotFound,
			fmt.Sprintf("resource %s not found", notFoundErr.Resource),
		)
		body.AdditionalFields.Set("details", notFoundErr.Condition)
		return body

	case errors.Is(err, store.ErrLinkNotFound):
		body := shared.NewErrorBody(shared.ErrorTypeNotFound, "resource Logic not found")
		body.AdditionalFields.Set("details", store.ConditionOf(err))
		return body

	case store.IsNotFound(err):
		body := shared.NewErrorBody(shared.ErrorTypeNotFound, "resource Card not found")
		body.AdditionalFields.Set("details", store.ConditionOf(err))
		return body

	case errors.Is(err, logicapi.ErrLogicNotFound):
		return shared.NewErrorBody(shared.ErrorTypeNotFound, "resource Logic not found")

	case errors.Is(err, store.ErrCardNotExists):
		return shared.NewErrorBody(
			shared.ErrorTypeNotComplete,
			fmt.Sprintf("The card `%s` doesn't exist.", store.ConditionOf(err)),
		)

	case errors.Is(err, store.ErrLogicAlreadyLinked):
		return shared.NewErrorBody(
			shared.ErrorTypeNotComplete,
			fmt.Sprintf("The generic logic `%s` has already been linked.", store.ConditionOf(err)),
		)

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return shared.NewErrorBody(shared.ErrorTypeRequest, "Unexpected request.")

	default:
		return shared.NewErrorBody(shared.ErrorTypeInternal, "Unexpected internal system error.")
	}
}

// RespondError is the single termination path for handler failures: it
// maps the error through the taxonomy, logs the internal cause and
// writes the terminal envelope.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, StatusCode(err), EnvelopeError(err), err)
}
