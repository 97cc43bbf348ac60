package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unrss/gitenv/internal/env"
	"github.com/unrss/gitenv/internal/resolve"
)

// ShowOutput is the JSON representation of a resolved git env.
type ShowOutput struct {
	resolve.Result
	Variables map[string]string `json:"variables"`
}

func newShowCmd(reader env.Reader) *cobra.Command {
	var ref string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the branch and environment names for a ref",
		Long:  `Resolve the git reference and display the result without exporting anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), reader, ref, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Git reference to resolve (defaults to the fallback variable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runShow(w io.Writer, reader env.Reader, ref string, jsonOutput bool) error {
	r := newResolver(reader, nil, zerolog.Nop())
	res, err := r.Resolve(ref)
	if err != nil {
		return err
	}

	output := ShowOutput{
		Result:    res,
		Variables: r.Vars(res),
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	c := newColorizer(w)

	fmt.Fprintf(w, "%s\n\n", c.bold("Git Env"))
	fmt.Fprintf(w, "  %s %s\n", c.cyan("Ref:"), output.Ref)
	if output.Ref == output.BranchName {
		fmt.Fprintf(w, "  %s %s %s\n", c.cyan("Branch:"), output.BranchName, c.dim("(no refs/heads/ prefix)"))
	} else {
		fmt.Fprintf(w, "  %s %s\n", c.cyan("Branch:"), output.BranchName)
	}
	fmt.Fprintf(w, "  %s %s\n\n", c.cyan("Env name:"), c.green(output.EnvName))

	fmt.Fprintf(w, "%s\n", c.bold("Variables"))
	for _, key := range env.Env(output.Variables).Keys() {
		fmt.Fprintf(w, "  %s=%s\n", key, output.Variables[key])
	}

	return nil
}
