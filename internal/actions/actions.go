// Package actions speaks the GitHub Actions runner protocol: reading step
// inputs, writing workflow commands, and appending to the env and output
// files the runner hands to each step.
package actions

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/unrss/gitenv/internal/env"
)

// Files and variables provided by the runner.
const (
	EnvFileVar    = "GITHUB_ENV"
	OutputFileVar = "GITHUB_OUTPUT"
	ActionsVar    = "GITHUB_ACTIONS"
)

// ErrInvalidDelimiter is returned when a name or value contains the
// generated heredoc delimiter.
var ErrInvalidDelimiter = errors.New("value contains the file command delimiter")

// Runner writes workflow commands to Out and looks up runner-provided
// variables through Env.
type Runner struct {
	Out io.Writer
	Env env.Reader

	failed   bool
	exported env.Env
	outputs  env.Env

	// newDelimiter is replaced in tests.
	newDelimiter func() string
}

// New creates a Runner.
func New(out io.Writer, reader env.Reader) *Runner {
	return &Runner{
		Out:          out,
		Env:          reader,
		exported:     make(env.Env),
		outputs:      make(env.Env),
		newDelimiter: defaultDelimiter,
	}
}

func defaultDelimiter() string {
	return "ghadelimiter_" + ksuid.New().String()
}

// IsGitHubActions reports whether the process runs inside GitHub Actions.
func (r *Runner) IsGitHubActions() bool {
	return r.Env.Getenv(ActionsVar) == "true"
}

// Input returns the trimmed value of the step input name, or "".
func (r *Runner) Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(r.Env.Getenv(key))
}

// StartGroup begins a collapsible log group.
func (r *Runner) StartGroup(title string) {
	r.issue("group", nil, title)
}

// EndGroup closes the current log group.
func (r *Runner) EndGroup() {
	r.issue("endgroup", nil, "")
}

// Info writes a plain log line.
func (r *Runner) Info(msg string) {
	fmt.Fprintln(r.Out, msg)
}

// Debug writes a line shown only when step debug logging is enabled.
func (r *Runner) Debug(msg string) {
	r.issue("debug", nil, msg)
}

// Warning writes a warning annotation.
func (r *Runner) Warning(msg string) {
	r.issue("warning", nil, msg)
}

// Error writes an error annotation.
func (r *Runner) Error(msg string) {
	r.issue("error", nil, msg)
}

// SetFailed writes an error annotation and marks the step as failed.
// The process keeps running; callers decide the exit code via Failed.
func (r *Runner) SetFailed(msg string) {
	r.failed = true
	r.Error(msg)
}

// Failed reports whether SetFailed was called.
func (r *Runner) Failed() bool {
	return r.failed
}

// Batch groups the variables and step outputs published together.
type Batch struct {
	// Env holds variables visible to later steps of the job.
	Env env.Env
	// Outputs holds step outputs readable through steps.<id>.outputs.<name>.
	Outputs env.Env
}

// Apply publishes every entry of b or none of them. File entries are
// written with one write per file; if the outputs file cannot be written,
// the entries already appended to the env file are removed again. Legacy
// set-env/set-output commands are only issued once all file writes
// succeeded.
func (r *Runner) Apply(b Batch) error {
	delimiter := r.newDelimiter()
	for _, vars := range []env.Env{b.Env, b.Outputs} {
		for name, value := range vars {
			if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
				return fmt.Errorf("%w: %s", ErrInvalidDelimiter, name)
			}
		}
	}

	envPath := r.Env.Getenv(EnvFileVar)
	outputPath := r.Env.Getenv(OutputFileVar)

	var undo func() error
	if envPath != "" && len(b.Env) > 0 {
		var err error
		undo, err = appendFile(envPath, fileCommands(b.Env, delimiter))
		if err != nil {
			return fmt.Errorf("write %s: %w", EnvFileVar, err)
		}
	}

	if outputPath != "" && len(b.Outputs) > 0 {
		if _, err := appendFile(outputPath, fileCommands(b.Outputs, delimiter)); err != nil {
			if undo != nil {
				if uerr := undo(); uerr != nil {
					err = errors.Join(err, fmt.Errorf("roll back %s: %w", EnvFileVar, uerr))
				}
			}
			return fmt.Errorf("write %s: %w", OutputFileVar, err)
		}
	}

	if envPath == "" {
		for _, name := range b.Env.Keys() {
			r.issue("set-env", map[string]string{"name": name}, b.Env[name])
		}
	}
	if outputPath == "" {
		for _, name := range b.Outputs.Keys() {
			r.issue("set-output", map[string]string{"name": name}, b.Outputs[name])
		}
	}

	for name, value := range b.Env {
		r.exported[name] = value
	}
	for name, value := range b.Outputs {
		r.outputs[name] = value
	}
	return nil
}

// Exported returns a copy of the variables exported so far.
func (r *Runner) Exported() env.Env {
	return r.exported.Copy()
}

// Outputs returns a copy of the outputs set so far.
func (r *Runner) Outputs() env.Env {
	return r.outputs.Copy()
}

// fileCommands renders vars as heredoc-style entries, sorted by name:
//
//	name<<delimiter
//	value
//	delimiter
func fileCommands(vars env.Env, delimiter string) []byte {
	var sb strings.Builder
	for _, name := range vars.Keys() {
		fmt.Fprintf(&sb, "%s<<%s\n%s\n%s\n", name, delimiter, vars[name], delimiter)
	}
	return []byte(sb.String())
}

// appendFile appends data to path in a single write. On success it returns
// a function that restores the file to its previous state. A failed write
// is rolled back before returning.
func appendFile(path string, data []byte) (func() error, error) {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	size := info.Size()

	undo := func() error {
		if created {
			return os.Remove(path)
		}
		return os.Truncate(path, size)
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if uerr := undo(); uerr != nil {
			err = errors.Join(err, uerr)
		}
		return nil, err
	}

	return undo, nil
}
