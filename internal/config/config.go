// Package config manages gitenv configuration from files and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/unrss/gitenv/internal/logging"
)

// Config holds gitenv configuration.
type Config struct {
	// FallbackVar names the variable read when no explicit ref is given.
	FallbackVar string `mapstructure:"fallback_var"`

	// BranchVar and EnvVar name the exported variables.
	BranchVar string `mapstructure:"branch_var"`
	EnvVar    string `mapstructure:"env_var"`

	// GroupTitle is the title of the log group written by `gitenv run`.
	GroupTitle string `mapstructure:"group_title"`

	// SetOutputs controls whether `gitenv run` also sets step outputs.
	SetOutputs bool `mapstructure:"set_outputs"`

	// LogLevel is a zerolog level name.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is console or json.
	LogFormat string `mapstructure:"log_format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		FallbackVar: "GITHUB_REF",
		BranchVar:   "BRANCH_NAME",
		EnvVar:      "ENV_NAME",
		GroupTitle:  "Configuring git env variables",
		SetOutputs:  true,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Load reads configuration from file and environment variables.
// Configuration is loaded from (in order of precedence):
//  1. Environment variables (GITENV_*)
//  2. Config file ($XDG_CONFIG_HOME/gitenv/config.toml or ~/.config/gitenv/config.toml)
//  3. Default values
func Load() (*Config, error) {
	v := newViper()

	def := Default()
	v.SetDefault("fallback_var", def.FallbackVar)
	v.SetDefault("branch_var", def.BranchVar)
	v.SetDefault("env_var", def.EnvVar)
	v.SetDefault("group_title", def.GroupTitle)
	v.SetDefault("set_outputs", def.SetOutputs)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix("GITENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that was loaded, or empty if none.
func ConfigFile() string {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "gitenv"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "gitenv"))
	}

	return v
}

var varName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that variable names are usable as environment keys and
// that the log settings are understood by the logger.
func (c *Config) Validate() error {
	for _, f := range []struct {
		key, value string
	}{
		{"fallback_var", c.FallbackVar},
		{"branch_var", c.BranchVar},
		{"env_var", c.EnvVar},
	} {
		if !varName.MatchString(f.value) {
			return fmt.Errorf("invalid %s %q: must match %s", f.key, f.value, varName)
		}
	}

	if c.BranchVar == c.EnvVar {
		return fmt.Errorf("branch_var and env_var must differ, both are %q", c.BranchVar)
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q: must be %s or %s", c.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}

	return nil
}
