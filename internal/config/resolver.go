package config

import (
	"os"

	"github.com/opmodel/project/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// resolve applies flag > env > config > default precedence.
func resolve(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	envValue := os.Getenv(envVar)

	// Viper merges env into the config struct, so an identical config value
	// is the env value seen twice rather than a shadowed file value.
	if configValue == envValue {
		configValue = ""
	}

	switch {
	case flagValue != "":
		result.Value, result.Source = flagValue, SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		if configValue != "" {
			result.Shadowed[SourceConfig] = configValue
		}
	case envValue != "":
		result.Value, result.Source = envValue, SourceEnv
		if configValue != "" {
			result.Shadowed[SourceConfig] = configValue
		}
	case configValue != "":
		result.Value, result.Source = configValue, SourceConfig
	default:
		result.Value, result.Source = defaultValue, SourceDefault
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PROJECT_CONFIG env, (3) ~/.project/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flagValue, envPrefix+"_CONFIG", "", paths.ConfigFile), nil
}

// ResolveRoot resolves the templates root using precedence:
// (1) --root flag, (2) PROJECT_ROOT env, (3) config root, (4) current directory.
func ResolveRoot(flagValue string, cfg *Config) ResolvedValue {
	configValue := ""
	if cfg != nil {
		configValue = cfg.Root
	}
	return resolve("root", flagValue, envPrefix+"_ROOT", configValue, ".")
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
