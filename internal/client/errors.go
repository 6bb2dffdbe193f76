// Package client wraps the external Booking API. It performs network
// I/O only and never mutates local state; callers apply the results.
// Failures are classified into three recoverable kinds so that higher
// layers can render them correctly: NotFoundError for absent
// resources, ValidationError for business-rule rejections carrying
// per-field messages, and RequestError for transport or server
// failures.
package client

import "fmt"

// NotFoundError indicates the requested resource does not exist
// upstream (404 class). Handlers should translate this into an HTTP
// 404 response.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError carries the backend's field→message map when a
// booking is rejected by a business rule, e.g. a seat sold between
// selection and submit. These merge into the same error map used by
// local validation so the user sees field-specific feedback either way.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking rejected: %d field error(s)", len(e.Fields))
}

// RequestError wraps transport failures and 5xx responses. It is shown
// to users as a single non-field-specific notice. Status is zero when
// the request never reached the server.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booking api request failed: %v", e.Err)
	}
	return fmt.Sprintf("booking api request failed: HTTP %d", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }
