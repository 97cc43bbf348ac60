// Package main is the entry point for the gitenv CLI.
package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/unrss/gitenv/internal/cmd"
)

//go:embed version.txt
var version string

func main() {
	if err := cmd.Execute(cmd.Assets{
		Version: version,
	}); err != nil {
		// The runner already reported a failed step.
		if !errors.Is(err, cmd.ErrStepFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
