package scraper

import "fmt"

// NetworkError reports a page that could not be retrieved
type NetworkError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an element or pattern missing from a page, or a
// listing scan that ended without a match.
type NotFoundError struct {
	What  string
	Where string
}

func (e *NotFoundError) Error() string {
	if e.Where == "" {
		return e.What + " not found"
	}
	return fmt.Sprintf("%s not found in %s", e.What, e.Where)
}

// ParseError reports a value that is not a valid non-negative integer
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
