package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/opmodel/project/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: heredoc.Doc(`
			Show project CLI version information.

			Displays:
			  - CLI version, commit, and build date
			  - git binary used for cloning (from PATH)
		`),
		Args: argsError(cobra.NoArgs),
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(version.Get(), version.DetectGitBinary()))
	return nil
}
