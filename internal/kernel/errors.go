package kernel

import (
	"errors"
	"fmt"
)

// ErrMaxIterations is returned when the fixpoint loop exceeds the
// engine's iteration guard. It signals a defective rule base (a cycle),
// not a bad input.
var ErrMaxIterations = errors.New("kernel: iteration guard exceeded")

// BuildError is a fatal configuration error detected while constructing
// a template or rule base. An engine is never built from a knowledge
// base that fails validation.
type BuildError struct {
	Subject string // template or rule name
	Reason  string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("kernel: invalid definition %q: %s", e.Subject, e.Reason)
}
