package errors

import "errors"

// Custom application errors
var (
	// ErrNotFound covers both a missing record and an ownership mismatch so
	// that callers cannot distinguish "does not exist" from "not yours".
	ErrNotFound           = errors.New("reminder or user not found")
	ErrTerminalState      = errors.New("reminder is in a terminal state")
	ErrValidation         = errors.New("missing or invalid required fields")
	ErrCapacity           = errors.New("capacity limit reached")
	ErrEmailTaken         = errors.New("email address already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStore              = errors.New("store operation failed")
	ErrScheduler          = errors.New("scheduler operation failed")
	ErrEmail              = errors.New("email channel operation failed")
	ErrInternal           = errors.New("internal server error")
)
