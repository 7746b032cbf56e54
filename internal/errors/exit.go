package errors

import "errors"

// Exit codes returned by the project CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified or filesystem error.
	ExitGeneralError = 1

	// ExitInvalidArguments indicates a malformed command line.
	ExitInvalidArguments = 2

	// ExitUnknownLanguage indicates an unsupported language.
	ExitUnknownLanguage = 3

	// ExitTemplateNotFound indicates the requested template does not exist.
	ExitTemplateNotFound = 4

	// ExitDestinationExists indicates the clone destination is not empty.
	ExitDestinationExists = 5

	// ExitVCSError indicates git failed.
	ExitVCSError = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set once the command layer has shown the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrInvalidArguments):
		return ExitInvalidArguments
	case errors.Is(err, ErrUnknownLanguage):
		return ExitUnknownLanguage
	case errors.Is(err, ErrTemplateNotFound):
		return ExitTemplateNotFound
	case errors.Is(err, ErrDestinationExists):
		return ExitDestinationExists
	case errors.Is(err, ErrVCS):
		return ExitVCSError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitInvalidArguments:
		return "Invalid Arguments"
	case ExitUnknownLanguage:
		return "Unknown Language"
	case ExitTemplateNotFound:
		return "Template Not Found"
	case ExitDestinationExists:
		return "Destination Exists"
	case ExitVCSError:
		return "Version Control Error"
	default:
		return "Unknown"
	}
}
