package productboard

import (
	"errors"
	"fmt"
)

// ErrMissingToken indicates the Productboard API token was not configured.
// The token is required for every request, so client construction fails
// fast instead of surfacing authentication errors per call.
var ErrMissingToken = errors.New("productboard API token is required (set PRODUCTBOARD_API_TOKEN)")

// UpstreamError is returned when the Productboard API responds with a
// non-success HTTP status. Body holds a best-effort excerpt of the
// response body (empty if it could not be read).
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("productboard API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("productboard API returned status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is returned when a response body cannot be
// decoded as the expected JSON structure. At the pagination level it is a
// terminal page error: the collector stops and keeps any prior pages.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause == nil {
		return "productboard API returned a malformed response"
	}
	return fmt.Sprintf("productboard API returned a malformed response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// ScopeNotFoundError is returned when the default product lookup finds no
// product with the configured name. The miss is never cached, so a later
// call retries the lookup (the product may be created upstream meanwhile).
type ScopeNotFoundError struct {
	Name string
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("no product named %q found in the workspace", e.Name)
}

// ValidationError is returned when caller-supplied arguments are rejected
// before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsUpstreamStatus reports whether err is an UpstreamError with the given
// HTTP status code.
func IsUpstreamStatus(err error, status int) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == status
}
