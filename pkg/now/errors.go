package now

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrBlankToken    = errors.New("token cannot be blank")
	ErrNilHTTPClient = errors.New("http client is required")
)

// ConfigurationError reports that no usable credentials could be established.
// It is only ever returned while constructing a client.
type ConfigurationError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnsuccessfulResponseError reports a response outside the 200-299 range.
type UnsuccessfulResponseError struct {
	StatusCode int    `json:"code"    yaml:"code"`
	Message    string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *UnsuccessfulResponseError) Error() string {
	return fmt.Sprintf("unsuccessful response: %s (code: %d)", e.Message, e.StatusCode)
}

// TransportError reports a call that could not complete: connection failure, timeout,
// or a response that could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// unsuccessful response.
func StatusCode(err error) int {
	respErr := &UnsuccessfulResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsUnsuccessfulResponse checks if the server answered with a non-2xx status.
func IsUnsuccessfulResponse(err error) bool {
	return StatusCode(err) != 0
}

// IsConfigurationError checks if the error comes from credential resolution.
func IsConfigurationError(err error) bool {
	confErr := &ConfigurationError{}

	return errors.As(err, &confErr)
}

// IsTransportError checks if the call failed before a response could be interpreted.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}
