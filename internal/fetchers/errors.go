package fetchers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedStatus matches every StatusError
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-2xx answer from an upstream endpoint
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Code, body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
