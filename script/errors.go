package script

import "errors"

// Sentinel errors for the script host.
var (
	// ErrHostClosed is returned when operations are attempted on a
	// closed host.
	ErrHostClosed = errors.New("script host is closed")

	// ErrInvalidJSON is returned when a payload document is not valid
	// JSON.
	ErrInvalidJSON = errors.New("invalid json payload")

	// ErrNotFunction is returned when a listener script does not
	// return a Lua function.
	ErrNotFunction = errors.New("listener script did not return a function")

	// ErrMissingCategory is returned for a manifest binding with no
	// category and no wildcard flag.
	ErrMissingCategory = errors.New("manifest binding needs a category or wildcard")

	// ErrMissingScript is returned for a manifest binding with no
	// script path.
	ErrMissingScript = errors.New("manifest binding needs a script path")
)
