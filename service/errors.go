package service

import "errors"

// Error taxonomy. Handlers map these onto HTTP status codes and the error
// category field of the response envelope.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

type sentinelError struct {
	msg      string
	sentinel error
}

func (e sentinelError) Error() string {
	return e.msg
}

func (e sentinelError) Unwrap() error {
	return e.sentinel
}

func wrapSentinel(msg string, sentinel error) error {
	return sentinelError{msg: msg, sentinel: sentinel}
}
