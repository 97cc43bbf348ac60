package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unrss/gitenv/internal/actions"
	"github.com/unrss/gitenv/internal/config"
	"github.com/unrss/gitenv/internal/env"
	"github.com/unrss/gitenv/internal/logging"
)

const failureMessage = "An error occurred while determining the git env"

// Step output names set alongside the exported variables.
const (
	branchOutput = "branch-name"
	envOutput    = "env-name"
)

func newRunCmd(reader env.Reader) *cobra.Command {
	var ref string
	var configErr error

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Export BRANCH_NAME and ENV_NAME to later workflow steps",
		Long: `Run as a GitHub Actions step. The reference is taken from --ref, then the
gitRef action input, then $GITHUB_REF. Variables are appended to $GITHUB_ENV.

On failure the step is marked failed with an error annotation and the
command exits 1.`,
		Args: cobra.NoArgs,
		// Configuration errors are reported through the step failure
		// signal rather than aborting before the log group opens.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configErr = initConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := actions.New(cmd.OutOrStdout(), reader)
			return runStep(runner, ref, configErr)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Git reference to resolve")

	return cmd
}

func runStep(runner *actions.Runner, ref string, configErr error) error {
	title := config.Default().GroupTitle
	if configErr == nil {
		title = cfg.GroupTitle
	}

	runner.StartGroup(title)
	defer runner.EndGroup()

	if configErr != nil {
		return failStep(runner, fallbackLogger(runner), configErr)
	}

	logger, err := logging.New(runner.Out, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return failStep(runner, fallbackLogger(runner), err)
	}

	if ref == "" {
		ref = runner.Input("gitRef")
	}

	r := newResolver(runner.Env, func(vars env.Env) error {
		batch := actions.Batch{Env: vars}
		if cfg.SetOutputs {
			batch.Outputs = env.Env{
				branchOutput: vars[cfg.BranchVar],
				envOutput:    vars[cfg.EnvVar],
			}
		}
		return runner.Apply(batch)
	}, logger)

	if _, err := r.Publish(ref); err != nil {
		return failStep(runner, logger, err)
	}

	return nil
}

func failStep(runner *actions.Runner, logger zerolog.Logger, err error) error {
	logger.Error().Err(err).Msg("determine git env")
	runner.SetFailed(failureMessage)
	return ErrStepFailed
}

// fallbackLogger is used when the configured logger cannot be built.
func fallbackLogger(runner *actions.Runner) zerolog.Logger {
	logger, _ := logging.New(runner.Out, "", logging.FormatConsole)
	return logger
}
