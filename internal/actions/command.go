package actions

import (
	"fmt"
	"slices"
	"strings"
)

// issue writes a workflow command of the form ::cmd key=val,...::message.
func (r *Runner) issue(command string, props map[string]string, message string) {
	var sb strings.Builder
	sb.WriteString("::")
	sb.WriteString(command)

	if len(props) > 0 {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		sb.WriteByte(' ')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s=%s", k, escapeProperty(props[k]))
		}
	}

	sb.WriteString("::")
	sb.WriteString(escapeData(message))
	fmt.Fprintln(r.Out, sb.String())
}

var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
