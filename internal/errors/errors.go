package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap these with fmt.Errorf("%w: ...") and the API layer maps them to
// HTTP responses with errors.Is, so business logic never deals in status codes.

var (
	// ErrNotFound signifies that a requested session, message or record could not
	// be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation (empty query, out-of-range setting, malformed body).
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource, e.g. submitting to a
	// session that already has a completion in flight.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not authorized to perform the
	// requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrUpstream signifies that the completion endpoint or another external
	// collaborator returned a non-success response.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrUpstream = errors.New("upstream failure")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
