package proxy

import "net/http"

// HTTPError is the client-facing failure of a proxy request: a status code
// plus a minimal plain-text message. Internal causes are logged, never
// carried here.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func ErrBadImage() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "Invalid or unsupported image format")
}

func ErrInternal() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "Failed to process image")
}
