package imagebank

import "errors"

var (
	// ErrUnsupportedVariant indicates an unknown interpolation variant.
	ErrUnsupportedVariant = errors.New("imagebank: unsupported variant")
	// ErrBadInput indicates an input image with an invalid shape, e.g.
	// non-square or smaller than the requested neuron dimension.
	ErrBadInput = errors.New("imagebank: bad input image")
)
