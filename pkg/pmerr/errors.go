// Package pmerr contains the error taxonomy shared by stores, the
// authorization core and the web layer.
package pmerr

import "errors"

var (
	// ErrNotFound is returned when a resource id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals the actor has no standing on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInsufficientRole signals the actor holds a team role outside the required set.
	ErrInsufficientRole = errors.New("insufficient role")
	// ErrValidation signals failed input validation. No mutation is attempted.
	ErrValidation = errors.New("validation failed")
	// ErrConflict signals duplicate membership or duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrInvalidOperation signals an operation that can never succeed, such as
	// removing a team's sole owner.
	ErrInvalidOperation = errors.New("invalid operation")
)
