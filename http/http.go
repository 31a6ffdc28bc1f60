// Package http provides HTTP-related operations: downloading and mirror lookups
package http

import (
	"fmt"
	"net/url"
)

// Error is download error connected to HTTP code
type Error struct {
	Code int
	URL  string
}

// Error
func (e *Error) Error() string {
	return fmt.Sprintf("HTTP code %d while fetching %s", e.Code, e.URL)
}

// NoCandidateFoundError indicates that no link to the file could be found on mirror page
type NoCandidateFoundError struct {
	Name string
	URL  *url.URL
}

// Error message
func (e *NoCandidateFoundError) Error() string {
	return fmt.Sprintf("no candidates for %s found at %s", e.Name, e.URL)
}
