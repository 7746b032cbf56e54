package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
)

// Execute runs rootCmd and converts any failure into an *oerrors.ExitError
// carrying the exit code for its error kind. The error message has already
// been written to the command's error stream when Printed is set.
func Execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	if isCobraUsageError(err) {
		err = oerrors.NewInvalidArgumentsError(err.Error(),
			fmt.Sprintf("Run '%s --help' for usage.", rootCmd.CommandPath()))
	}

	code := oerrors.ExitCodeFromError(err)
	output.Debug("command failed", "exit_code", code, "reason", oerrors.ExitCodeName(code))

	exitErr = oerrors.NewExitError(err, code)
	fmt.Fprint(rootCmd.ErrOrStderr(), formatError(err))
	exitErr.Printed = true
	return exitErr
}

func formatError(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return detail.Error()
	}
	return "Error: " + err.Error() + "\n"
}
