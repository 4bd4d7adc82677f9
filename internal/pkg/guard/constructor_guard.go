// Package guard provides a marker that distinguishes values built by their
// constructors from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and value objects. Only the
// constructor sets it, so a zero value fails validation.
//
// Example:
//
//	var ErrWeightIsNotConstructed = errors.New("Weight must be created via NewWeight")
//
//	type Weight struct {
//	    kg    float64
//	    guard guard.ConstructorGuard
//	}
//
//	func (w Weight) Validate() error {
//	    return w.guard.Validate(ErrWeightIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not set by a constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
