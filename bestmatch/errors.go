package bestmatch

import "errors"

// ErrBadInput indicates a neuron tensor whose length does not match the
// configured neuron count and shape.
var ErrBadInput = errors.New("bestmatch: bad input")
