package pinkfile

import "errors"

var (
	// ErrIO wraps any underlying I/O failure (open, read, write).
	ErrIO = errors.New("pinkfile: io error")
	// ErrDimensionMismatch indicates a header field on disk does not match
	// the configured geometry; this is always a fatal load error.
	ErrDimensionMismatch = errors.New("pinkfile: dimension mismatch")
	// ErrNoImagesLeft is returned by ImageStreamReader.Next when the
	// stream is exhausted.
	ErrNoImagesLeft = errors.New("pinkfile: no images left")
)
