package layout

import "errors"

var (
	// ErrBadConfig indicates an invalid geometry or neighborhood parameter,
	// e.g. a non-positive sigma or an even hexagonal side length.
	ErrBadConfig = errors.New("layout: bad configuration")
)
