package errs

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error returned by the data layer to a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrUnsupported):
		return http.StatusMethodNotAllowed
	}

	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch {
	case kind == NotFound:
		return http.StatusNotFound
	case kind.IsConstraint():
		return http.StatusConflict
	case kind == ConnectionFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns a message safe to show to API clients. Infrastructure
// failures collapse to the generic status text.
func PublicMessage(err error) string {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
