// Package cmd implements the gitenv CLI commands.
package cmd

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unrss/gitenv/internal/config"
	"github.com/unrss/gitenv/internal/env"
	"github.com/unrss/gitenv/internal/resolve"
)

// Assets holds embedded files passed from main.
type Assets struct {
	Version string
}

// ErrStepFailed is returned by Execute when `gitenv run` marked the step as
// failed. The failure has already been reported through the runner.
var ErrStepFailed = errors.New("step failed")

// cfg holds the loaded configuration, available to all commands.
var cfg *config.Config

// Execute runs the root command with the provided assets.
func Execute(assets Assets) error {
	root := newRootCmd(assets, env.OSReader{})
	return root.Execute()
}

func newRootCmd(assets Assets, reader env.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitenv",
		Short: "Derive branch and environment names from a git ref",
		Long: `gitenv strips refs/heads/ from a git reference and derives a short,
deterministic environment name from the branch, then exports both as
BRANCH_NAME and ENV_NAME for later CI steps.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.AddCommand(
		newRunCmd(reader),
		newExportCmd(reader),
		newShowCmd(reader),
		newVersionCmd(assets.Version),
		newConfigCmd(),
	)

	return cmd
}

func initConfig() error {
	var err error
	cfg, err = config.Load()
	return err
}

// newResolver builds a resolver using the configured variable names.
func newResolver(reader env.Reader, export resolve.ExportFunc, logger zerolog.Logger) *resolve.Resolver {
	r := resolve.New(reader, export)
	r.FallbackVar = cfg.FallbackVar
	r.BranchVar = cfg.BranchVar
	r.EnvVar = cfg.EnvVar
	r.Logger = logger
	return r
}
