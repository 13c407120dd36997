package passaporteweb

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by client operations. Match with errors.Is.
var (
	// ErrNotFound means the service reported no record for the given
	// identifier, criteria, or page.
	ErrNotFound = errors.New("passaporteweb: not found")

	// ErrInvalidArgument means the service rejected a query parameter or
	// filter on a list/count call.
	ErrInvalidArgument = errors.New("passaporteweb: invalid argument")

	// ErrValidationFailed means a create/update/mutate call received a
	// client-fault response. The instance's Errors() map holds the service's
	// messages; the instance's persistence state is unchanged.
	ErrValidationFailed = errors.New("passaporteweb: validation failed")

	// ErrPreconditionViolated means a local state check failed before any
	// network call was made, e.g. destroying a transient instance. The
	// instance's Errors() map holds a descriptive message.
	ErrPreconditionViolated = errors.New("passaporteweb: precondition violated")
)

// UnexpectedResponseError reports a status the operation did not anticipate —
// a server fault, or a success code other than the one required. It signals a
// contract breach with the service rather than user-correctable input, so it
// propagates as a hard failure and is never captured into an instance's
// Errors() map.
type UnexpectedResponseError struct {
	Status int
	Body   []byte
}

// Error implements the error interface.
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("passaporteweb: unexpected response status %d: %s", e.Status, e.Body)
}

func unexpected(resp *Response) error {
	return &UnexpectedResponseError{Status: resp.StatusCode, Body: resp.Body}
}
