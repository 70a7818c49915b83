package service

import "errors"

var (
	// ErrTerminated is returned by RegisterService once Terminate has
	// completed.
	ErrTerminated = errors.New("service: operation on terminated manager")
	// ErrDuplicateProtocol is returned when RegisterService is called
	// twice for the same protocol tag. Per §7 this is a programmer-error
	// precondition violation, surfaced here as an error.
	ErrDuplicateProtocol = errors.New("service: protocol already registered")
	// ErrInvalidPacket is logged and dropped when a tunneled datagram's
	// payload is shorter than the 8-byte timestamp trailer.
	ErrInvalidPacket = errors.New("service: payload shorter than timestamp trailer")
)
