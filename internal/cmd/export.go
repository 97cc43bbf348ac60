package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unrss/gitenv/internal/env"
	"github.com/unrss/gitenv/internal/logging"
	"github.com/unrss/gitenv/internal/shell"
)

func newExportCmd(reader env.Reader) *cobra.Command {
	var ref string
	var unset bool

	cmd := &cobra.Command{
		Use:   "export <shell>",
		Short: "Print shell statements that set BRANCH_NAME and ENV_NAME",
		Long: `Resolve the git reference and print statements for the given shell,
for use outside GitHub Actions:

  eval "$(gitenv export bash --ref "$CI_COMMIT_REF")"

Log lines go to stderr so stdout can be evaluated directly.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Supported(),
		RunE: func(cmd *cobra.Command, args []string) error {
			shellName := args[0]

			sh := shell.Get(shellName)
			if sh == nil {
				return fmt.Errorf("unsupported shell: %s (supported: %v)", shellName, shell.Supported())
			}

			return runExport(cmd.OutOrStdout(), cmd.ErrOrStderr(), reader, sh, ref, unset)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Git reference to resolve (defaults to the fallback variable)")
	cmd.Flags().BoolVar(&unset, "unset", false, "Print statements that unset the variables instead")

	return cmd
}

func runExport(stdout, stderr io.Writer, reader env.Reader, sh shell.Shell, ref string, unset bool) error {
	export := make(shell.ShellExport)

	if unset {
		export.Unset(cfg.BranchVar)
		export.Unset(cfg.EnvVar)
		fmt.Fprint(stdout, sh.Export(export))
		return nil
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	r := newResolver(reader, func(vars env.Env) error {
		for name, value := range vars {
			export.Set(name, value)
		}
		return nil
	}, logger)

	if _, err := r.Publish(ref); err != nil {
		return err
	}

	fmt.Fprint(stdout, sh.Export(export))
	return nil
}
