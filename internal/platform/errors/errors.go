package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrSessionBusy       = errors.New("session request already in flight")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrInvalidTransition = errors.New("invalid transition")
)
