// Package guard provides a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in an aggregate or value object makes zero-value
// instances detectable, so that objects bypassing their constructor fail
// validation instead of silently violating invariants.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when no
// object-specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value is an unconstructed guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the owning object as properly
// constructed. Call it from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the owning object was built through its constructor.
// For zero-value objects it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
