package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState           = errors.New("invalid state")
	ErrBusinessRuleViolation  = errors.New("business rule violation")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// InvalidStateError reports an operation that the aggregate's current state forbids.
type InvalidStateError struct {
	Reason string
	Cause  error
}

func NewInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

func NewInvalidStateErrorWithCause(reason string, cause error) *InvalidStateError {
	return &InvalidStateError{Reason: reason, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidState, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidState, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// BusinessRuleError reports a deterministic business rule rejection. It is never retried.
type BusinessRuleError struct {
	Rule  string
	Cause error
}

func NewBusinessRuleError(rule string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule}
}

func NewBusinessRuleErrorWithCause(rule string, cause error) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Cause: cause}
}

func (e *BusinessRuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrBusinessRuleViolation, e.Rule, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBusinessRuleViolation, e.Rule)
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRuleViolation
}

// ConcurrentModificationError reports a single lost optimistic write on Entity.
type ConcurrentModificationError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConcurrentModificationError(entity string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id}
}

func NewConcurrentModificationErrorWithCause(entity string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrConcurrentModification, e.Entity)
	if e.ID != nil {
		msg = fmt.Sprintf("%s %s", msg, sanitize(e.ID))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// ConcurrencyConflictError is surfaced once the bounded retry loop gives up.
// Nothing was committed, so the caller may retry the whole operation.
type ConcurrencyConflictError struct {
	Operation string
	Attempts  int
	Cause     error
}

func NewConcurrencyConflictError(operation string, attempts int, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Operation: operation, Attempts: attempts, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s gave up after %d attempts", ErrConcurrentModification, e.Operation, e.Attempts)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrentModification
}
