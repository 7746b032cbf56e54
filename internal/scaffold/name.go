package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	oerrors "github.com/opmodel/project/internal/errors"
)

// ResolveProjectName returns explicit when set, otherwise the last path
// segment of destination.
func ResolveProjectName(destination, explicit string) (string, error) {
	name := explicit
	if name == "" {
		abs, err := filepath.Abs(destination)
		if err != nil {
			return "", oerrors.NewFilesystemError("resolving destination", destination, err)
		}
		name = filepath.Base(abs)
	}

	if err := validateProjectName(name); err != nil {
		return "", err
	}
	return name, nil
}

// IdentifierName turns a project name into the form written into template
// files. Dashes are not valid in C++ or Python identifiers.
func IdentifierName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func validateProjectName(name string) error {
	switch {
	case name == "", name == ".", name == "..", name == string(filepath.Separator):
		return oerrors.NewInvalidArgumentsError(
			fmt.Sprintf("cannot derive a project name from %q", name),
			"Pass the project name explicitly as the last argument.",
		)
	case strings.ContainsAny(name, `/\`):
		return oerrors.NewInvalidArgumentsError(
			fmt.Sprintf("project name %q must not contain path separators", name),
			"",
		)
	}
	return nil
}
