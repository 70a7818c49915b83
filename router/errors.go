package router

import "errors"

// ErrTerminated is returned by Send once Terminate has been called.
// Receive has no error result and does not report termination. Per §7
// of the design this is a programmer-error
// precondition violation; this implementation surfaces it as an error
// rather than aborting the process.
var ErrTerminated = errors.New("router: operation on terminated router")
