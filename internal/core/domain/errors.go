package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBadInput            = errors.New("bad input")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNotLoaded           = errors.New("resource not loaded")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
)

// ErrInvalidPayload, ErrInvalidQuestion and ErrInvalidJobDescription are
// BadInput failures on JSON endpoints; the error handler renders them as 422
// instead of 400.
var (
	ErrInvalidPayload        = fmt.Errorf("%w: invalid JSON payload", ErrBadInput)
	ErrInvalidQuestion       = fmt.Errorf("%w: question must not be empty", ErrBadInput)
	ErrInvalidJobDescription = fmt.Errorf("%w: job_description must not be empty", ErrBadInput)
)
