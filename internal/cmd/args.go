package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/project/internal/errors"
)

// argsError wraps a cobra positional argument validator so that arity
// failures carry ErrInvalidArguments.
func argsError(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return oerrors.NewInvalidArgumentsError(err.Error(), usageHint(cmd))
		}
		return nil
	}
}

// flagError is installed as the root flag error function.
func flagError(cmd *cobra.Command, err error) error {
	return oerrors.NewInvalidArgumentsError(err.Error(), usageHint(cmd))
}

func usageHint(cmd *cobra.Command) string {
	return fmt.Sprintf("Usage: %s\nRun '%s --help' for more information.", cmd.UseLine(), cmd.CommandPath())
}

// isCobraUsageError reports whether err is one of cobra's own command
// resolution errors, which are plain errors without a sentinel.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
