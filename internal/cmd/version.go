package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print gitenv version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := strings.TrimSpace(version)
			if v == "" {
				v = "dev"
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
