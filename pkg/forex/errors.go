package forex

import (
	"errors"
	"fmt"
)

// ErrBadRate marks responses whose rate field is missing, non-numeric,
// or not a positive number. A non-positive FX rate is never meaningful,
// so it is rejected the same way as a missing field.
var ErrBadRate = errors.New("missing or invalid rate in response")

// APIError is returned when the rate API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("forex api: status %d: %s", e.StatusCode, e.Body)
}

// IsParseError reports whether err means the response arrived but did not
// contain a usable rate.
func IsParseError(err error) bool {
	return errors.Is(err, ErrBadRate)
}

// IsNetworkError reports whether err means the request itself failed:
// transport error, timeout, or a non-2xx status from the API.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return true
	}
	return !IsParseError(err)
}
