// Package errs provides the error taxonomy shared by every layer of the marketplace engine.
//
// Every error type follows the same shape:
//   - a sentinel error variable that identifies the category (e.g., ErrValueIsRequired)
//   - a struct type that carries the details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the category sentinel
//
// Categories map onto how callers react to a failure:
//   - validation (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange): malformed input,
//     rejected before any transaction starts
//   - ErrObjectNotFound: the referenced aggregate does not exist
//   - ErrInvalidState: the aggregate's current state does not allow the operation
//   - ErrBusinessRuleViolation: a deterministic business rule rejected the operation
//   - ErrConcurrentModification: an optimistic write lost a race; retried internally and
//     surfaced as ConcurrencyConflictError once retries are exhausted
//
// Domain packages build their own sentinels from these constructors, so both
// errors.Is(err, voucher.ErrVoucherExpired) and errors.Is(err, errs.ErrBusinessRuleViolation) hold.
package errs
