package som

import "errors"

var (
	// ErrBadConfig indicates an invalid channel count, neuron dimension,
	// or initializer configuration.
	ErrBadConfig = errors.New("som: bad configuration")
	// ErrDimensionMismatch indicates a bank shape, winner index or
	// best-rotation vector disagrees with this SOM's geometry; always fatal.
	// A SOM file whose header disagrees is reported by Read as
	// pinkfile.ErrDimensionMismatch.
	ErrDimensionMismatch = errors.New("som: dimension mismatch")
)
