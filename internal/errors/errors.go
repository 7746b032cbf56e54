// Package errors provides sentinel errors and structured error details for the project CLI.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError captures structured error information shown to the user.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the filesystem path involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	// Sorted so repeated runs print identical output.
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewUnknownLanguageError reports a language outside the supported set.
func NewUnknownLanguageError(language string, supported []string) error {
	return &DetailError{
		Type:    "unknown language",
		Message: fmt.Sprintf("unsupported language '%s'", language),
		Hint:    fmt.Sprintf("Supported languages: %s", strings.Join(supported, ", ")),
		Cause:   ErrUnknownLanguage,
	}
}

// NewTemplateNotFoundError reports a missing template directory.
func NewTemplateNotFoundError(language, template, location string) error {
	return &DetailError{
		Type:     "template not found",
		Message:  fmt.Sprintf("no project template '%s' for language '%s'", template, language),
		Location: location,
		Hint:     fmt.Sprintf("Run 'project list %s' to see available templates.", language),
		Cause:    ErrTemplateNotFound,
	}
}

// NewDestinationExistsError reports a destination that already holds files.
func NewDestinationExistsError(location string) error {
	return &DetailError{
		Type:     "destination exists",
		Message:  fmt.Sprintf("destination is not empty: %s", location),
		Location: location,
		Hint:     "Choose a different destination or remove the existing one.",
		Cause:    ErrDestinationExists,
	}
}

// NewFilesystemError wraps a filesystem failure on path.
func NewFilesystemError(op, location string, err error) error {
	return &DetailError{
		Type:     "filesystem error",
		Message:  fmt.Sprintf("%s: %v", op, err),
		Location: location,
		Cause:    fmt.Errorf("%w: %w", ErrFilesystem, err),
	}
}

// NewInvalidArgumentsError reports a malformed command line.
func NewInvalidArgumentsError(message, hint string) error {
	return &DetailError{
		Type:    "invalid arguments",
		Message: message,
		Hint:    hint,
		Cause:   ErrInvalidArguments,
	}
}

// NewVCSError wraps a git failure together with its combined output.
func NewVCSError(command, location, output string, err error) error {
	ctx := map[string]string{"Command": command}
	if out := strings.TrimSpace(output); out != "" {
		ctx["Output"] = out
	}
	return &DetailError{
		Type:     "version control error",
		Message:  fmt.Sprintf("command '%s' failed: %v", command, err),
		Location: location,
		Context:  ctx,
		Hint:     "Make sure git is installed and available on PATH.",
		Cause:    fmt.Errorf("%w: %w", ErrVCS, err),
	}
}
