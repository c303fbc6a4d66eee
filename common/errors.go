package common

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("bad input")
var ErrInternal = errors.New("internal error")

// ErrConfiguration is returned when a component is constructed without
// the collaborators it needs.
var ErrConfiguration = errors.New("configuration error")

// ErrVerification marks failures raised by an external verification function.
var ErrVerification = errors.New("verification error")
