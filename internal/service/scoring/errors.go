package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProfileNotScorable is returned for profiles that carry a fetch error.
var ErrProfileNotScorable = errors.New("profile has a fetch error and cannot be scored")

// BackendError reports a transport or provider failure of the reasoning backend.
type BackendError struct {
	Backend string
	Kind    string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s call to reasoning backend %s failed: %v", e.Kind, e.Backend, e.Cause)
}

func (e *BackendError) Unwrap() error { return e.Cause }

// ParseError reports a backend response that could not be read as the expected JSON.
type ParseError struct {
	Backend string
	Kind    string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response from %s: %v", e.Kind, e.Backend, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ValidationDegraded lists the field-level repairs applied to an otherwise valid
// response. It is a quality signal for logs and metrics, not a failure.
type ValidationDegraded struct {
	Repairs []string
}

func (e *ValidationDegraded) Error() string {
	return "response repaired: " + strings.Join(e.Repairs, ", ")
}
