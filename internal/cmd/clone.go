package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/opmodel/project/internal/git"
	"github.com/opmodel/project/internal/output"
	"github.com/opmodel/project/internal/scaffold"
)

// cloneOptions holds the flags of the clone command.
type cloneOptions struct {
	noGit        bool
	noSubmodules bool
	placeholder  string
	showFileTree bool
}

// NewCloneCmd creates the clone command.
func NewCloneCmd(cfg *GlobalConfig) *cobra.Command {
	opts := &cloneOptions{}

	c := &cobra.Command{
		Use:   "clone <language> <template> <destination> [project_name]",
		Short: "Create a new project from a template",
		Long: heredoc.Doc(`
			Create a new project from a template.

			The template <root>/<language>/<template> is copied into <destination>,
			which must not exist or must be an empty directory. Every occurrence of
			the project name placeholder in file contents and file names is replaced
			with the project name, dashes replaced by underscores: the project
			my-app is written as my_app. The project name defaults to the last
			segment of the destination path.

			The new project is initialized as a fresh git repository with no link
			to the template's history.
		`),
		Example: heredoc.Doc(`
			# Create ./hello from the py3 "cli" template
			project clone py3 cli ./hello

			# Files of ./my-app contain my_app in place of the placeholder
			project clone py3 cli ./my-app

			# Use an explicit project name
			project clone cpp lib ./src/mylib my-lib

			# Clone a template from a group
			project clone cpp qt/widgets ./viewer
		`),
		Args:              argsError(cobra.RangeArgs(3, 4)),
		ValidArgsFunction: completeCloneArgs(cfg),
		RunE: func(c *cobra.Command, args []string) error {
			return runClone(c, args, cfg, opts)
		},
	}

	opts.AddTo(c)

	return c
}

// AddTo registers the clone flags on cmd.
func (o *cloneOptions) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noGit, "no-git", false, "Do not initialize a git repository in the new project")
	cmd.Flags().BoolVar(&o.noSubmodules, "no-submodule-init", false, "Do not check out an empty template submodule")
	cmd.Flags().StringVar(&o.placeholder, "placeholder", "", "Placeholder token to replace (default from config)")
	cmd.Flags().BoolVar(&o.showFileTree, "tree", true, "Print the created file tree")
}

func runClone(cmd *cobra.Command, args []string, cfg *GlobalConfig, opts *cloneOptions) error {
	language, template, destination := args[0], args[1], args[2]
	projectName := ""
	if len(args) == 4 {
		projectName = args[3]
	}

	placeholder := cfg.Config.Placeholder
	if opts.placeholder != "" {
		placeholder = opts.placeholder
	}

	s := scaffold.New(cfg.Registry(), git.New())
	result, err := s.Clone(cmd.Context(), scaffold.Options{
		Language:       language,
		Template:       template,
		Destination:    destination,
		ProjectName:    projectName,
		Placeholder:    placeholder,
		InitRepo:       cfg.Config.Git.Init && !opts.noGit,
		InitSubmodules: cfg.Config.Git.Submodules && !opts.noSubmodules,
	})
	if err != nil {
		return err
	}

	output.Debug("project created",
		"files", len(result.Files),
		"replacements", result.Replacements,
		"renamed", result.Renamed,
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Created project %s from %s in %s",
		output.FormatNoun(result.ProjectName),
		output.FormatNoun(result.Template.Language+"/"+result.Template.Name),
		result.Destination,
	)))

	if opts.showFileTree && len(result.Files) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, output.RenderFileTree(filepath.Base(result.Destination), cloneTreeEntries(result)))
	}

	if result.Repository {
		fmt.Fprintln(out)
		fmt.Fprintln(out, output.GetStyles().Muted.Render("Initialized empty git repository"))
	}

	return nil
}

// cloneTreeEntries annotates patched files for the file tree.
func cloneTreeEntries(result *scaffold.Result) map[string]string {
	patched := make(map[string]bool, len(result.Patched))
	for _, p := range result.Patched {
		patched[p] = true
	}

	entries := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		if patched[f] {
			entries[f] = "name substituted"
		} else {
			entries[f] = ""
		}
	}
	return entries
}

// completeCloneArgs completes the language and template arguments.
func completeCloneArgs(cfg *GlobalConfig) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return completeLanguages(cfg, toComplete)
		case 1:
			if cfg.Config == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names, err := cfg.Registry().List(args[0])
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
		case 2:
			return nil, cobra.ShellCompDirectiveFilterDirs
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
}

func completeLanguages(cfg *GlobalConfig, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cfg.Config == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(cfg.Config.SortedLanguages(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
