package entity

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidInput     = errors.New("invalid input")
	ErrActionNotFound   = errors.New("action not found")
)

// UpstreamStatusError is returned when MinerU answers with a status of 300
// or above.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("MinerU API request failed with status %d: %s", e.StatusCode, e.Body)
}

// FormatMismatchError is returned when the response body kind does not match
// the requested output format.
type FormatMismatchError struct {
	Expected string
	Got      string
}

func (e *FormatMismatchError) Error() string {
	if e.Expected == ZipExtension {
		return "expected ZIP file but got non-binary response"
	}
	return fmt.Sprintf("expected %s response but got %s", e.Expected, e.Got)
}
