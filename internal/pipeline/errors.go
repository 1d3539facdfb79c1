package pipeline

import (
	"errors"
	"fmt"
)

// ErrBadTarget rejects a run before any side effect: the target must
// be an absolute http or https URL.
var ErrBadTarget = errors.New("target must be an http(s) URL")

// RetrievalError means the target page could not be captured. No
// partial assessment is produced or logged.
type RetrievalError struct {
	URL string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// InferenceError means a live model call failed in transport or at the
// service. Distinct from the unconfigured case, which is not an error.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
