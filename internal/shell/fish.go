package shell

import (
	"fmt"
	"strings"
)

type fishShell struct{}

// Fish is the Shell implementation for fish.
var Fish Shell = &fishShell{}

func (f *fishShell) Name() string {
	return "fish"
}

func (f *fishShell) Export(e ShellExport) string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, key := range e.Keys() {
		value := e[key]
		if value == nil {
			fmt.Fprintf(&sb, "set -e %s;\n", key)
		} else {
			fmt.Fprintf(&sb, "set -gx %s '%s';\n", key, FishEscape(*value))
		}
	}

	return sb.String()
}
