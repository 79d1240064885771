package slackapi

import "fmt"

// APIError is a response the platform answered with ok=false. Transport
// failures are returned as-is and are never wrapped in an APIError, so
// callers can tell "the API said no" from "the API was unreachable".
type APIError struct {
	Method string
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack api %s: %s", e.Method, e.Reason)
}
