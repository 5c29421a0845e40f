package config

import "errors"

// ErrBadConfig indicates a recognised option was set to an unrecognised
// value.
var ErrBadConfig = errors.New("config: bad configuration")
