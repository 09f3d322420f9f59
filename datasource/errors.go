package datasource

import "errors"

var (
	// ErrNotFound is returned when the upstream rejects a lookup with a non-success status
	ErrNotFound = errors.New("location not found")

	// ErrNetwork covers transport failures and malformed responses
	ErrNetwork = errors.New("network error")
)
