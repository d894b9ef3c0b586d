package client

import (
	"errors"
	"fmt"
)

// ErrCategoryInUse marks the gateway's 409 on deleting a category that
// still has menu items referencing it.
var ErrCategoryInUse = errors.New("cannot delete category with existing menu items")

// ErrNotFound marks a 404 from the gateway.
var ErrNotFound = errors.New("not found")

// APIError carries a non-2xx gateway response: the HTTP status code and
// the server's message, verbatim, so callers can surface it unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned HTTP %d: %s", e.StatusCode, e.Message)
}
