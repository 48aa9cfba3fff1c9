package companies

import "errors"

// ErrNotFound is returned when no stored company matches a query
var ErrNotFound = errors.New("company not found")

// InputError reports a request the service refuses before touching storage
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

var (
	errEmptyQuery = &InputError{Message: "Search query is required"}
	errEmptyName  = &InputError{Message: "Company name is required"}
)
