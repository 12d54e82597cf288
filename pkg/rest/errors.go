package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is produced entirely on the client side, before any request
// is issued. It never reaches the transport.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequestError is a non-2xx server response, carrying the server-supplied
// message when the envelope had one.
type RequestError struct {
	Status  int
	Message string
	Path    string
}

func (e *RequestError) Error() string {
	if len(e.Message) > 0 {
		return fmt.Sprintf("request to %s failed with status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("request to %s failed with status %d", e.Path, e.Status)
}

// AuthError is the 401/403 specialization of RequestError. Session bootstrap
// treats it differently from every other failure.
type AuthError struct {
	RequestError
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s got no response: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func newStatusError(status int, message, path string) error {
	reqErr := RequestError{Status: status, Message: message, Path: path}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthError{RequestError: reqErr}
	}
	return &reqErr
}
