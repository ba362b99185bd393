package lifecycle

import "errors"

// Mutation failures are classified into these kinds so the transport layer
// can decide presentation. Validation failures are rejected before any
// mutation is attempted.
var (
	// ErrValidation marks a locally rejected request: no state changed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when the action does not apply to
	// the ticket's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoEmployees is returned by StartWash without at least one
	// employee selected.
	ErrNoEmployees = errors.New("at least one employee must be selected")

	// ErrChecklistIncomplete is returned by MarkReady when any
	// verification item is unchecked.
	ErrChecklistIncomplete = errors.New("verification checklist incomplete")

	// ErrExtrasUnattributed is returned by MarkReady when the ticket is
	// shared by multiple employees and an extra has no assigned employee.
	// The caller must attribute every extra before completion.
	ErrExtrasUnattributed = errors.New("extras must be attributed to an employee")

	// ErrInvalidPayment is returned by Settle with an unknown payment
	// method or a negative tip.
	ErrInvalidPayment = errors.New("invalid payment")
)
