// Package errors provides standardized error handling for aoctui.
// It defines the error kinds raised while loading configuration, talking to
// the events site and parsing its pages, plus helpers for wrapping and
// classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Fetch error kinds
	RequestFailed
	UnexpectedStatus
	// Parse error kinds
	ParseFailed
	// Terminal error kinds
	TerminalFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "invalid config"
	case ConfigNotFound:
		return "config not found"
	case RequestFailed:
		return "request failed"
	case UnexpectedStatus:
		return "unexpected status"
	case ParseFailed:
		return "parse failed"
	case TerminalFailed:
		return "terminal failed"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrMissingAnchor = NewParseError("event has no link", "a", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// FetchError represents a failed request to the events site
type FetchError struct {
	ApplicationError
	url    string
	status int
}

// NewFetchError creates an error for a request that never produced a response.
func NewFetchError(url string, err error) *FetchError {
	return &FetchError{
		ApplicationError: ApplicationError{
			msg:  "request failed",
			err:  err,
			kind: RequestFailed,
		},
		url: url,
	}
}

// NewStatusError creates an error for a response with an unexpected status code.
func NewStatusError(url string, status int) *FetchError {
	return &FetchError{
		ApplicationError: ApplicationError{
			msg:  "unexpected status",
			kind: UnexpectedStatus,
		},
		url:    url,
		status: status,
	}
}

// Error returns the fetch error message
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.msg, e.url)
	if e.status != 0 {
		msg = fmt.Sprintf("%s: status=%d", msg, e.status)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// URL returns the requested URL
func (e *FetchError) URL() string {
	return e.url
}

// Status returns the HTTP status code, or 0 when no response was received
func (e *FetchError) Status() int {
	return e.status
}

// ParseError represents a document that does not have the expected shape
type ParseError struct {
	ApplicationError
	selector string
}

// NewParseError creates a new parse error for the given selector
func NewParseError(msg string, selector string, err error) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: ParseFailed,
		},
		selector: selector,
	}
}

// Error returns the parse error message
func (e *ParseError) Error() string {
	if e.selector != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: selector=%s: %v", e.msg, e.selector, e.err)
		}
		return fmt.Sprintf("%s: selector=%s", e.msg, e.selector)
	}
	return e.ApplicationError.Error()
}

// Selector returns the CSS selector that failed to match
func (e *ParseError) Selector() string {
	return e.selector
}

// Is lets errors.Is match any ParseError carrying the same selector and message.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.msg == t.msg && e.selector == t.selector
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// WrapKind wraps err with a message and an explicit kind
func WrapKind(err error, kind ErrorKind, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// KindOf returns the kind of the first application error in err's chain
// that carries a kind other than Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsConfigNotFound checks if the error reports a missing config file
func IsConfigNotFound(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == ConfigNotFound
	}
	return false
}

// IsUnexpectedStatus checks if the error is a non-OK HTTP response
func IsUnexpectedStatus(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind() == UnexpectedStatus
	}
	return false
}

// IsParseFailure checks if the error came from parsing the events document
func IsParseFailure(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
