package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidConfig indicates the resolved configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
