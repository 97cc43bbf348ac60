package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/gitenv/internal/config"
)

// ConfigOutput is the JSON representation of gitenv configuration.
type ConfigOutput struct {
	ConfigFile  string `json:"config_file,omitempty"`
	FallbackVar string `json:"fallback_var"`
	BranchVar   string `json:"branch_var"`
	EnvVar      string `json:"env_var"`
	GroupTitle  string `json:"group_title"`
	SetOutputs  bool   `json:"set_outputs"`
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"`
}

func newConfigCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Long: `Display the current gitenv configuration including values from
the config file, environment variables, and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runConfig(w io.Writer, jsonOutput bool) error {
	output := ConfigOutput{
		ConfigFile:  config.ConfigFile(),
		FallbackVar: cfg.FallbackVar,
		BranchVar:   cfg.BranchVar,
		EnvVar:      cfg.EnvVar,
		GroupTitle:  cfg.GroupTitle,
		SetOutputs:  cfg.SetOutputs,
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	return outputConfigHuman(w, output)
}

func outputConfigHuman(w io.Writer, output ConfigOutput) error {
	c := newColorizer(w)

	fmt.Fprintf(w, "%s\n\n", c.bold("Gitenv Configuration"))

	if output.ConfigFile != "" {
		fmt.Fprintf(w, "  %s %s\n", c.cyan("Config file:"), output.ConfigFile)
	} else {
		fmt.Fprintf(w, "  %s %s\n", c.cyan("Config file:"), c.dim("(none)"))
	}

	fmt.Fprintf(w, "  %s %s\n", c.cyan("Fallback variable:"), output.FallbackVar)
	fmt.Fprintf(w, "  %s %s\n", c.cyan("Branch variable:"), output.BranchVar)
	fmt.Fprintf(w, "  %s %s\n", c.cyan("Env variable:"), output.EnvVar)
	fmt.Fprintf(w, "  %s %s\n", c.cyan("Group title:"), output.GroupTitle)

	fmt.Fprintf(w, "  %s", c.cyan("Set outputs:"))
	if output.SetOutputs {
		fmt.Fprintf(w, " %s\n", c.green("true"))
	} else {
		fmt.Fprintf(w, " %s\n", c.yellow("false"))
	}

	fmt.Fprintf(w, "  %s %s (%s)\n", c.cyan("Log level:"), output.LogLevel, output.LogFormat)

	return nil
}
