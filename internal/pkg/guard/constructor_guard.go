// Package guard provides the ConstructorGuard pattern used by domain objects
// and commands to ensure they are only created through their designated
// constructor functions. A zero-value guard fails validation, so structs that
// embed it cannot be used without going through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its owner was created through a constructor.
// Embed it in a struct and set it with NewConstructorGuard inside the
// constructor; Validate then distinguishes constructed instances from zero values.
//
// Example:
//
//	type Folio struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewFolio(value string) (Folio, error) {
//	    if value == "" {
//	        return Folio{}, errors.New("folio is required")
//	    }
//	    return Folio{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (f Folio) Validate() error {
//	    return f.guard.Validate(ErrFolioIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards. For zero-value guards it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
