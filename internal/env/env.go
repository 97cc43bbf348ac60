// Package env provides environment variable types and lookups for gitenv.
package env

import (
	"os"
	"slices"
	"strings"
)

// Env represents environment variables as a map.
type Env map[string]string

// FromGoEnv creates an Env from os.Environ() format ([]string{"KEY=value"}).
// Entries without an "=" are ignored. Empty values are preserved.
func FromGoEnv(environ []string) Env {
	env := make(Env, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}

// ToGoEnv converts to os.Environ() format.
// Keys are sorted for deterministic output.
func (e Env) ToGoEnv() []string {
	if e == nil {
		return nil
	}
	result := make([]string, 0, len(e))
	for key, value := range e {
		result = append(result, key+"="+value)
	}
	slices.Sort(result)
	return result
}

// Keys returns the variable names in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Copy returns a deep copy of the environment.
func (e Env) Copy() Env {
	if e == nil {
		return nil
	}
	cp := make(Env, len(e))
	for k, v := range e {
		cp[k] = v
	}
	return cp
}

// Getenv returns the value for key, or "" when absent. It lets an Env
// stand in for the process environment.
func (e Env) Getenv(key string) string {
	return e[key]
}

// Reader looks up environment variables.
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the os package.
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key.
func (OSReader) Getenv(key string) string {
	return os.Getenv(key)
}
