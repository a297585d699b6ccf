package scheduler

import "errors"

// Domain errors returned by the engine. Controllers map these onto HTTP
// status codes; anything else is treated as a storage failure and surfaced
// as a 500 without the underlying detail.
var (
	ErrUnauthenticated   = errors.New("missing or invalid credentials")
	ErrForbidden         = errors.New("action not allowed for this role")
	ErrNotFound          = errors.New("record not found")
	ErrSlotConflict      = errors.New("time slot is already booked")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	ErrInvalidInput      = errors.New("invalid input")
)
