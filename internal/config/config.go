// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPlaceholder is the token replaced with the project name.
const DefaultPlaceholder = "{%PROJECT_NAME%}"

// DefaultLanguages is the built-in set of template languages.
var DefaultLanguages = []string{"cpp", "py3"}

// GitConfig contains git integration settings.
type GitConfig struct {
	// Init controls whether a cloned project is initialized as a fresh repository.
	// Env: PROJECT_GIT_INIT, Default: true
	Init bool `mapstructure:"init" yaml:"init"`

	// Submodules controls whether an un-initialized template submodule is
	// checked out before cloning.
	// Env: PROJECT_GIT_SUBMODULES, Default: true
	Submodules bool `mapstructure:"submodules" yaml:"submodules"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: off. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the project CLI configuration, loaded from
// ~/.project/config.yaml and PROJECT_* environment variables.
type Config struct {
	// Root is the templates repository root holding one folder per language.
	// Env: PROJECT_ROOT, Default: current directory
	Root string `mapstructure:"root" yaml:"root,omitempty"`

	// Languages is the set of supported template languages.
	// Env: PROJECT_LANGUAGES (comma separated)
	Languages []string `mapstructure:"languages" yaml:"languages"`

	// Placeholder is the token replaced with the project name.
	// Env: PROJECT_PLACEHOLDER
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`

	// Git contains git integration settings.
	Git GitConfig `mapstructure:"git" yaml:"git"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Languages:   append([]string(nil), DefaultLanguages...),
		Placeholder: DefaultPlaceholder,
		Git: GitConfig{
			Init:       true,
			Submodules: true,
		},
	}
}

// WithDefaults returns a copy of c with empty fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	defaults := DefaultConfig()

	if len(out.Languages) == 0 {
		out.Languages = defaults.Languages
	}
	if out.Placeholder == "" {
		out.Placeholder = defaults.Placeholder
	}

	return &out
}

// SortedLanguages returns the configured languages, trimmed, de-duplicated and sorted.
func (c *Config) SortedLanguages() []string {
	seen := make(map[string]bool, len(c.Languages))
	langs := make([]string, 0, len(c.Languages))
	for _, l := range c.Languages {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Validate checks the configuration for values the CLI cannot work with.
func (c *Config) Validate() error {
	if len(c.SortedLanguages()) == 0 {
		return fmt.Errorf("languages: at least one language is required")
	}
	for _, l := range c.SortedLanguages() {
		if strings.ContainsAny(l, `/\`) || l == "." || l == ".." || strings.HasPrefix(l, ".") {
			return fmt.Errorf("languages: invalid language %q", l)
		}
	}
	if c.Placeholder == "" {
		return fmt.Errorf("placeholder: must not be empty")
	}
	return nil
}
