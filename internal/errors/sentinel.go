package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrUnknownLanguage indicates a language outside the supported set.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrTemplateNotFound indicates no template directory matches the request.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDestinationExists indicates the destination already holds files.
	ErrDestinationExists = errors.New("destination exists")

	// ErrFilesystem indicates a copy, write or rename failure.
	ErrFilesystem = errors.New("filesystem error")

	// ErrInvalidArguments indicates a malformed command line.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrVCS indicates the git binary failed or is missing.
	ErrVCS = errors.New("version control error")
)
