// Package errs provides standardized error types for the shipping application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the domain, application and adapter layers.
//
// The package includes two groups of errors.
//
// Validation errors (reported to clients as 400):
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed range
//
// Lifecycle errors:
//   - ObjectNotFoundError: For when an aggregate cannot be found
//   - InvalidTransitionError: For when a parcel status change breaks the lifecycle rules
//   - ConcurrentModificationError: For when an optimistic version check loses a race
//   - ErrVerificationRequired, ErrVerificationInProgress, ErrAlreadyVerified:
//     For voice verification gate outcomes
//   - ErrUnauthorized, ErrForbidden: For ownership and role checks
//
// Each struct error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
