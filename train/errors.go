package train

import "errors"

// ErrInvariantViolation indicates an illegal Trainer state transition, e.g.
// Run called a second time, or an invalid Trainer configuration passed to
// New.
var ErrInvariantViolation = errors.New("train: invariant violation")
