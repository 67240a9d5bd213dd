package config

import "errors"

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat is returned for file extensions other than
	// .yaml, .yml and .json.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)
