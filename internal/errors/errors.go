// Package errors is our internal errors package. It should be used in place of the standard "errors" package,
// "golang.org/x/xerrors", or "fmt.Errorf".
// This package ensures that all errors have a correct category & collect stack-traces.
package errors

import "golang.org/x/xerrors"

// ConfigurationError represent a configuration error. When used, it should ideally also point towards the configuration
// value that caused this error to occur.
type ConfigurationError struct {
	E           error
	description string
	resolution  string
}

// NewConfigurationError returns a new ConfigurationError
func NewConfigurationError(msg string, a ...any) ConfigurationError {
	return ConfigurationError{E: xerrors.Errorf(msg, a...)}
}

// NewDetailedConfigurationError returns a ConfigurationError that can be decorated with a description and a possible
// resolution when it is presented to an end-user.
func NewDetailedConfigurationError(title, description, resolution string) ConfigurationError {
	return ConfigurationError{E: xerrors.New(title), description: description, resolution: resolution}
}

// AsConfigurationError checks whether the error is a configuration error
func AsConfigurationError(err error) (ConfigurationError, bool) {
	var e ConfigurationError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e ConfigurationError) Error() string {
	return e.E.Error()
}

// Unwrap returns the underlying error
func (e ConfigurationError) Unwrap() error {
	return e.E
}

// Description returns the long-form description of this error, if any.
func (e ConfigurationError) Description() string {
	return e.description
}

// Resolution returns a hint on how to resolve this error, if any.
func (e ConfigurationError) Resolution() string {
	return e.resolution
}

// Type returns the category of this error
func (e ConfigurationError) Type() string {
	return "Configuration Error"
}

// ExecutionError is an error that was encountered during the execution of a different task. Specifically, this is being
// used when the test runner (or its coverage wrapper) exits with a non-zero exit code.
// Execution errors store the exit code of the sub-process.
type ExecutionError struct {
	E    error
	Code int
}

// NewExecutionError returns a new ExecutionError
func NewExecutionError(code int, msg string, a ...any) ExecutionError {
	return ExecutionError{Code: code, E: xerrors.Errorf(msg, a...)}
}

// AsExecutionError checks whether the error is an execution error.
func AsExecutionError(err error) (ExecutionError, bool) {
	var e ExecutionError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e ExecutionError) Error() string {
	return e.E.Error()
}

// Unwrap returns the underlying error
func (e ExecutionError) Unwrap() error {
	return e.E
}

// InputError is an error caused by user input
type InputError struct {
	E error
}

// NewInputError returns a new InputError
func NewInputError(msg string, a ...any) InputError {
	return InputError{E: xerrors.Errorf(msg, a...)}
}

// AsInputError checks whether the error is an input error
func AsInputError(err error) (InputError, bool) {
	var e InputError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e InputError) Error() string {
	return e.E.Error()
}

// Unwrap returns the underlying error
func (e InputError) Unwrap() error {
	return e.E
}

// InternalError is an internal error. This error type should only be used if an end-user cannot act upon it and would
// need to reach out to us for support.
type InternalError struct {
	E error
}

// NewInternalError returns a new InternalError
func NewInternalError(msg string, a ...any) InternalError {
	return InternalError{E: xerrors.Errorf(msg, a...)}
}

// AsInternalError checks whether the error is an internal error
func AsInternalError(err error) (InternalError, bool) {
	var e InternalError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e InternalError) Error() string {
	return e.E.Error()
}

// Unwrap returns the underlying error
func (e InternalError) Unwrap() error {
	return e.E
}

// SystemError is returned when we encountered a system error. This is most likely either a process that could not be
// started or an error during a file read / write.
type SystemError struct {
	E error
}

// NewSystemError returns a new SystemError
func NewSystemError(msg string, a ...any) SystemError {
	return SystemError{E: xerrors.Errorf(msg, a...)}
}

// AsSystemError checks whether the error is a system error
func AsSystemError(err error) (SystemError, bool) {
	var e SystemError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e SystemError) Error() string {
	return e.E.Error()
}

// Unwrap returns the underlying error
func (e SystemError) Unwrap() error {
	return e.E
}
