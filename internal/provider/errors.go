package provider

import (
	"errors"
	"fmt"
)

// ErrNoEntry means the source answered but holds no entry for the word.
var ErrNoEntry = errors.New("no dictionary entry")

// HTTPStatusError reports a non-2xx response from a dictionary source.
// Callers treat it like any other source failure and move on to the next
// source.
type HTTPStatusError struct {
	Source     string
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}
