// Package shell formats exported variables as statements for the supported
// shells and file formats.
package shell

import "slices"

// ShellExport represents environment changes to apply.
// Key present with non-nil value = set variable.
// Key present with nil value = unset variable.
type ShellExport map[string]*string

// Set marks a variable to be set to the given value.
func (e ShellExport) Set(key, value string) {
	e[key] = &value
}

// Unset marks a variable to be unset.
func (e ShellExport) Unset(key string) {
	e[key] = nil
}

// Keys returns the variable names in sorted order.
func (e ShellExport) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Shell defines the interface for shell-specific output.
type Shell interface {
	// Name returns the shell name (bash, zsh, fish, dotenv).
	Name() string

	// Export formats environment changes as shell statements, one per
	// line, sorted by key.
	Export(e ShellExport) string
}

// shells is the registry of supported shell implementations.
var shells = map[string]Shell{
	"bash":   Bash,
	"dotenv": Dotenv,
	"fish":   Fish,
	"zsh":    Zsh,
}

// Get returns the Shell implementation for the given name.
// Returns nil if shell is not supported.
func Get(name string) Shell {
	return shells[name]
}

// Supported returns the sorted list of supported shell names.
func Supported() []string {
	names := make([]string, 0, len(shells))
	for name := range shells {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
