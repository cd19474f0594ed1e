package store

import (
	"errors"
	"fmt"

	"github.com/mochi-hq/mochi-api/internal/domain"
)

// Operation identifies the persistence operation a failure occurred in.
type Operation string

// Persistence operations, one per store call.
const (
	OpCreateCard   Operation = "create card"
	OpListCards    Operation = "list cards"
	OpGetCard      Operation = "get card"
	OpUpdateCard   Operation = "update card"
	OpDeleteCard   Operation = "delete card"
	OpGetCardLinks Operation = "get card links"
	OpLinkLogic    Operation = "link generic logic"
	OpUnlinkLogic  Operation = "unlink generic logic"
)

// Domain-rule errors. These carry a user-facing meaning and surface
// through the API as NotComplete responses; everything else in this
// package is internal-only.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCardNotFound indicates that the requested card does not exist.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrLinkNotFound indicates that the requested generic logic link
	// does not exist.
	ErrLinkNotFound = fmt.Errorf("%w: generic logic link", ErrNotFound)

	// ErrCardNotExists is returned when a link operation targets a card
	// that does not exist.
	ErrCardNotExists = errors.New("card does not exist")

	// ErrLogicAlreadyLinked is returned when a generic logic record is
	// already linked to the card.
	ErrLogicAlreadyLinked = errors.New("generic logic already linked")
)

// ConditionError attaches the diagnostic condition a failed lookup or
// conflict check was evaluated against. The wrapped sentinel decides
// the external mapping; the condition only enriches the message.
type ConditionError struct {
	Condition domain.Condition
	Err       error
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	if e.Condition.IsEmpty() {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), e.Condition)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ConditionError) Unwrap() error {
	return e.Err
}

// WithCondition wraps err with the given condition. Returns err
// unchanged when it is nil.
func WithCondition(err error, condition domain.Condition) error {
	if err == nil {
		return nil
	}
	return &ConditionError{Condition: condition, Err: err}
}

// ConditionOf extracts the innermost condition attached to the error
// chain. Returns an empty condition when none is attached.
func ConditionOf(err error) domain.Condition {
	var condErr *ConditionError
	if errors.As(err, &condErr) {
		return condErr.Condition
	}
	var persistErr *PersistError
	if errors.As(err, &persistErr) {
		return persistErr.Condition
	}
	return domain.EmptyCondition()
}

// PersistError is a persistence I/O failure. It wraps the underlying
// driver error together with the operation and the condition the
// operation was evaluated against. The driver error is logged, never
// serialized to clients.
type PersistError struct {
	Op        Operation
	Condition domain.Condition
	Err       error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	if e.Condition.IsEmpty() {
		return fmt.Sprintf("persist: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persist: %s %s failed: %v", e.Op, e.Condition, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// NewPersistError creates a PersistError for the given operation.
func NewPersistError(op Operation, condition domain.Condition, err error) *PersistError {
	return &PersistError{Op: op, Condition: condition, Err: err}
}

// IsNotFound checks if the error is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
