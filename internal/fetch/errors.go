package fetch

import "errors"

var (
	// ErrBadStatus is returned when the server answers with an error
	// status code (4xx or 5xx).
	ErrBadStatus = errors.New("server returned error status")

	// ErrNotHTML is returned when the response is not an HTML document.
	ErrNotHTML = errors.New("response is not an HTML document")
)
