package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport failures talking to the content API.
	ErrNetwork = errors.New("network failure")
	// ErrHTTPStatus is matched by every *HTTPError.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrDecode wraps malformed response bodies.
	ErrDecode = errors.New("malformed response")

	ErrCacheMiss = errors.New("media not cached")

	ErrEmptyQuery     = errors.New("search query is empty")
	ErrUnknownSection = errors.New("unknown section")

	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyBody    = errors.New("message body is empty")
)

// HTTPError is returned when the content API answers with a non-2xx status.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}
