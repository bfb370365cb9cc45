// Package guard marks values that were produced by their constructor function.
//
// Commands, queries and value objects in labflow embed a ConstructorGuard so that a
// zero-value literal (for example commands.CreateOrderCommand{}) is rejected by the
// handler instead of flowing into the domain with empty fields.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is a flag set only by NewConstructorGuard.
//
// Example:
//
//	type GetOrderQuery struct {
//	    orderID  kernel.UUID
//	    callerID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (q GetOrderQuery) Validate() error {
//	    return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
