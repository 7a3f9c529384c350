package message

import "errors"

var (
	// ErrMalformedFrame is returned when a decoded reliable-stream payload
	// does not parse as a well-formed message frame.
	ErrMalformedFrame = errors.New("message: malformed frame")

	// ErrNotRegistered is returned by Send when the message's Go type has
	// no proto->opcode registration.
	ErrNotRegistered = errors.New("message: type not registered")

	// ErrTimeout is delivered to a SendWithResponse future when no
	// matching response arrives before its deadline.
	ErrTimeout = errors.New("message: response timed out")
)
