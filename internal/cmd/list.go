package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "list <language>",
		Short: "List the templates available for a language",
		Long: heredoc.Doc(`
			List the templates available for a language.

			Template names are printed one per line in sorted order. Templates kept
			in a group folder are listed as <group>/<template>.
		`),
		Example: heredoc.Doc(`
			project list py3
			project list cpp -o yaml

			# Show which template submodules are checked out
			project list py3 -o wide
		`),
		Args:              argsError(cobra.ExactArgs(1)),
		ValidArgsFunction: completeListArgs(cfg),
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c, args, cfg, outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return c
}

func runList(cmd *cobra.Command, args []string, cfg *GlobalConfig, outputFlag string) error {
	format, ok := output.ParseOutputFormat(outputFlag)
	if !ok {
		return oerrors.NewInvalidArgumentsError(
			fmt.Sprintf("invalid output format %q", outputFlag),
			fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", ")),
		)
	}

	language := args[0]
	names, err := cfg.Registry().List(language)
	if err != nil {
		return err
	}

	output.Debug("listed templates", "language", language, "count", len(names))

	if format == output.FormatWide {
		return writeTemplateTable(cmd, cfg, language, names)
	}

	return output.WriteTemplateList(cmd.OutOrStdout(), format, output.TemplateList{
		Language:  language,
		Templates: names,
	})
}

// writeTemplateTable prints each template with whether its submodule is
// checked out.
func writeTemplateTable(cmd *cobra.Command, cfg *GlobalConfig, language string, names []string) error {
	reg := cfg.Registry()
	rows := make([]output.TemplateRow, 0, len(names))
	for _, name := range names {
		tmpl, err := reg.Resolve(language, name)
		if err != nil {
			return err
		}
		ready, err := tmpl.Materialized()
		if err != nil {
			return oerrors.NewFilesystemError("reading template", tmpl.Path, err)
		}
		status := output.StatusReady
		if !ready {
			status = output.StatusUninitialized
		}
		rows = append(rows, output.TemplateRow{Name: name, Status: status, Path: tmpl.Path})
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.RenderTemplateTable(rows))
	return nil
}

func completeListArgs(cfg *GlobalConfig) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeLanguages(cfg, toComplete)
	}
}
