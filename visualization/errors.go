package visualization

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageError is an error with the status and plain-text body sent to the
// client.
type PageError struct {
	Status  int
	Message string
	Err     error
}

func (e *PageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PageError) Unwrap() error { return e.Err }

// NewNotFoundError creates the 404 returned for a missing CSV file
func NewNotFoundError() *PageError {
	return &PageError{
		Status:  http.StatusNotFound,
		Message: "File not found",
	}
}

// NewParseError creates the 500 returned when a CSV file is malformed
func NewParseError(cause error) *PageError {
	return &PageError{
		Status:  http.StatusInternalServerError,
		Message: "Failed to parse CSV file",
		Err:     cause,
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *PageError {
	return &PageError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     cause,
	}
}

// handleError is the boundary every handler error passes through. Nothing
// has been written for the request yet, so the whole response is replaced.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var pageErr *PageError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &pageErr):
	case errors.As(err, &httpErr):
		pageErr = &PageError{
			Status:  httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		pageErr = NewInternalError("An unexpected error occurred", err)
	}

	if pageErr.Status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, pageErr)
	} else {
		s.logger.Debug("%s %s: %v", c.Request().Method, c.Request().URL.Path, pageErr)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(pageErr.Status)
	} else {
		err = c.String(pageErr.Status, pageErr.Message)
	}
	if err != nil {
		s.logger.Error("Failed to write error response: %v", err)
	}
}
