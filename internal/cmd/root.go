// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/opmodel/project/internal/config"
	"github.com/opmodel/project/internal/output"
	"github.com/opmodel/project/internal/registry"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command constructor.
type GlobalConfig struct {
	Config     *config.Config
	ConfigPath string

	// Root is the resolved templates repository root.
	Root    string
	Verbose bool

	configFlag     string
	rootFlag       string
	timestampsFlag bool
}

// Registry returns a template registry for the resolved root and languages.
func (g *GlobalConfig) Registry() *registry.Registry {
	return registry.New(g.Root, g.Config.SortedLanguages())
}

// NewRootCmd creates the root command for the project CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "project",
		Short: "Create new projects from language templates",
		Long: heredoc.Doc(`
			project clones project templates into new directories.

			Templates are git submodules stored under one folder per language
			in the templates root (--root, PROJECT_ROOT or the current directory).
			Cloning copies a template, replaces the project name placeholder and
			initializes the copy as a fresh git repository.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.configFlag, "config", "", "Path to config file (env: PROJECT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cfg.rootFlag, "root", "", "Templates repository root (env: PROJECT_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.AddCommand(NewCloneCmd(cfg))
	rootCmd.AddCommand(NewListCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, cfg *GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(cfg.configFlag)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	loaded, err := config.NewLoader().LoadWithDefaults(configPath.Value)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath.Value, err)
	}

	cfg.Config = loaded
	cfg.ConfigPath = configPath.Value

	// Timestamps: flag (if explicitly set) > config > default off
	logCfg := output.LogConfig{
		Verbose: cfg.Verbose,
		Writer:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.timestampsFlag)
	} else {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	root := config.ResolveRoot(cfg.rootFlag, loaded)
	cfg.Root, err = config.ExpandPath(root.Value)
	if err != nil {
		return fmt.Errorf("expanding root %s: %w", root.Value, err)
	}

	if cfg.Verbose {
		config.LogResolvedValues(configPath, root)
		if exists, err := config.ConfigFileExists(cfg.ConfigPath); err == nil && !exists {
			output.Debug("config file not found, using defaults", "path", cfg.ConfigPath)
		}
		output.Debug("initializing CLI",
			"config", cfg.ConfigPath,
			"root", cfg.Root,
			"languages", loaded.SortedLanguages(),
		)
	}

	return nil
}
