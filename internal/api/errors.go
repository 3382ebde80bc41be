package api

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned before any request is dispatched when an
// authenticated call finds no stored token. Callers route it to the login
// view (console) or a login hint (CLI).
var ErrNoSession = errors.New("no session: login required")

// APIError is a non-2xx response carrying the backend's structured detail.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
