package shell

import (
	"fmt"
	"strings"
)

type dotenvFormat struct{}

// Dotenv writes KEY="value" lines, suitable for docker --env-file style
// consumers and for appending to CI variable files. Unset keys are written
// with an empty value since the format cannot express removal.
var Dotenv Shell = &dotenvFormat{}

func (d *dotenvFormat) Name() string {
	return "dotenv"
}

func (d *dotenvFormat) Export(e ShellExport) string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, key := range e.Keys() {
		value := e[key]
		if value == nil {
			fmt.Fprintf(&sb, "%s=\n", key)
		} else {
			fmt.Fprintf(&sb, "%s=\"%s\"\n", key, DotenvEscape(*value))
		}
	}

	return sb.String()
}
