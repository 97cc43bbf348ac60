package shell

import (
	"fmt"
	"strings"
)

// posixShell covers bash and zsh, which share export/unset syntax.
type posixShell struct {
	name string
}

// Bash is the Shell implementation for bash.
var Bash Shell = &posixShell{name: "bash"}

// Zsh is the Shell implementation for zsh.
var Zsh Shell = &posixShell{name: "zsh"}

func (p *posixShell) Name() string {
	return p.name
}

func (p *posixShell) Export(e ShellExport) string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, key := range e.Keys() {
		value := e[key]
		if value == nil {
			fmt.Fprintf(&sb, "unset %s;\n", key)
		} else {
			fmt.Fprintf(&sb, "export %s=\"%s\";\n", key, BashEscape(*value))
		}
	}

	return sb.String()
}
