package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unrss/gitenv/internal/env"
)

// execute runs the root command with an isolated config location.
func execute(t *testing.T, vars env.Env, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	root := newRootCmd(Assets{Version: "1.2.3\n"}, vars)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// readFileCommands parses a GITHUB_ENV style file written with heredoc
// delimiters.
func readFileCommands(t *testing.T, path string) env.Env {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	result := env.Env{}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		name, delimiter, ok := strings.Cut(lines[i], "<<")
		require.True(t, ok, "line %d is not a heredoc header: %q", i, lines[i])
		require.True(t, strings.HasPrefix(delimiter, "ghadelimiter_"))

		var value []string
		for i++; i < len(lines) && lines[i] != delimiter; i++ {
			value = append(value, lines[i])
		}
		require.Less(t, i, len(lines), "unterminated entry for %s", name)
		result[name] = strings.Join(value, "\n")
	}
	return result
}

func actionEnv(t *testing.T, vars env.Env) (env.Env, string, string) {
	t.Helper()

	dir := t.TempDir()
	envFile := filepath.Join(dir, "github_env")
	outputFile := filepath.Join(dir, "github_output")

	all := env.Env{
		"GITHUB_ACTIONS": "true",
		"GITHUB_ENV":     envFile,
		"GITHUB_OUTPUT":  outputFile,
	}
	for k, v := range vars {
		all[k] = v
	}
	return all, envFile, outputFile
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		vars       env.Env
		args       []string
		wantBranch string
		wantEnv    string
	}{
		{
			name:       "action input",
			vars:       env.Env{"INPUT_GITREF": "refs/heads/main"},
			wantBranch: "main",
			wantEnv:    "b28b7a",
		},
		{
			name:       "fallback to GITHUB_REF",
			vars:       env.Env{"GITHUB_REF": "refs/heads/feature/foo"},
			wantBranch: "feature/foo",
			wantEnv:    "87171a",
		},
		{
			name:       "input wins over GITHUB_REF",
			vars:       env.Env{"INPUT_GITREF": "refs/heads/main", "GITHUB_REF": "refs/heads/other"},
			wantBranch: "main",
			wantEnv:    "b28b7a",
		},
		{
			name:       "flag wins over input",
			vars:       env.Env{"INPUT_GITREF": "refs/heads/other"},
			args:       []string{"--ref", "refs/tags/v1.0"},
			wantBranch: "refs/tags/v1.0",
			wantEnv:    "10f427",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, envFile, outputFile := actionEnv(t, tt.vars)

			stdout, _, err := execute(t, vars, append([]string{"run"}, tt.args...)...)
			require.NoError(t, err)

			assert.Equal(t, env.Env{"BRANCH_NAME": tt.wantBranch, "ENV_NAME": tt.wantEnv}, readFileCommands(t, envFile))
			assert.Equal(t, env.Env{"branch-name": tt.wantBranch, "env-name": tt.wantEnv}, readFileCommands(t, outputFile))

			assert.True(t, strings.HasPrefix(stdout, "::group::Configuring git env variables\n"), stdout)
			assert.True(t, strings.HasSuffix(stdout, "::endgroup::\n"), stdout)
			assert.Contains(t, stdout, "branch: "+tt.wantBranch)
			assert.Contains(t, stdout, "envName: "+tt.wantEnv)
			assert.NotContains(t, stdout, "::error::")
		})
	}
}

func TestRunMissingRef(t *testing.T) {
	vars, envFile, outputFile := actionEnv(t, nil)

	stdout, _, err := execute(t, vars, "run")
	require.ErrorIs(t, err, ErrStepFailed)

	assert.Contains(t, stdout, "::error::"+failureMessage+"\n")
	assert.Contains(t, stdout, "git reference is required")
	assert.Contains(t, stdout, "gitRef: <empty>")
	assert.True(t, strings.HasSuffix(stdout, "::endgroup::\n"), "group must be closed on failure: %q", stdout)

	_, statErr := os.Stat(envFile)
	assert.True(t, os.IsNotExist(statErr), "no variables should be exported")
	_, statErr = os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr), "no outputs should be set")
}

func TestRunExportFailure(t *testing.T) {
	vars := env.Env{
		"GITHUB_REF": "refs/heads/main",
		"GITHUB_ENV": filepath.Join(t.TempDir(), "missing", "github_env"),
	}

	stdout, _, err := execute(t, vars, "run")
	require.ErrorIs(t, err, ErrStepFailed)
	assert.Contains(t, stdout, "::error::"+failureMessage)
	assert.Contains(t, stdout, "export BRANCH_NAME")
}

func TestRunOutputFailurePublishesNothing(t *testing.T) {
	vars, envFile, _ := actionEnv(t, env.Env{"GITHUB_REF": "refs/heads/main"})
	// A directory cannot be opened for appending.
	vars["GITHUB_OUTPUT"] = t.TempDir()

	stdout, _, err := execute(t, vars, "run")
	require.ErrorIs(t, err, ErrStepFailed)

	assert.Contains(t, stdout, "::error::"+failureMessage+"\n")
	assert.Contains(t, stdout, "write GITHUB_OUTPUT")
	assert.NotContains(t, stdout, "::set-env")
	assert.True(t, strings.HasSuffix(stdout, "::endgroup::\n"), stdout)

	data, readErr := os.ReadFile(envFile)
	if readErr == nil {
		assert.Empty(t, data, "GITHUB_ENV must stay empty when outputs fail")
	} else {
		assert.True(t, os.IsNotExist(readErr), readErr)
	}
}

func TestRunInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		value   string
		wantLog string
	}{
		{name: "log level", setting: "GITENV_LOG_LEVEL", value: "bogus", wantLog: "invalid log_level"},
		{name: "log format", setting: "GITENV_LOG_FORMAT", value: "xml", wantLog: "invalid log_format"},
		{name: "variable name", setting: "GITENV_BRANCH_VAR", value: "not a name", wantLog: "invalid branch_var"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars, envFile, _ := actionEnv(t, env.Env{"GITHUB_REF": "refs/heads/main"})
			t.Setenv(tt.setting, tt.value)

			stdout, stderr, err := execute(t, vars, "run")
			require.ErrorIs(t, err, ErrStepFailed)
			assert.Empty(t, stderr)

			assert.True(t, strings.HasPrefix(stdout, "::group::Configuring git env variables\n"), stdout)
			assert.Contains(t, stdout, tt.wantLog)
			assert.Contains(t, stdout, "::error::"+failureMessage+"\n")
			assert.True(t, strings.HasSuffix(stdout, "::endgroup::\n"), stdout)

			_, statErr := os.Stat(envFile)
			assert.True(t, os.IsNotExist(statErr), "nothing should be exported")
		})
	}
}

func TestRunWithoutOutputs(t *testing.T) {
	vars, envFile, outputFile := actionEnv(t, env.Env{"GITHUB_REF": "refs/heads/main"})
	t.Setenv("GITENV_SET_OUTPUTS", "false")

	_, _, err := execute(t, vars, "run")
	require.NoError(t, err)

	assert.Equal(t, "main", readFileCommands(t, envFile)["BRANCH_NAME"])
	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCustomNames(t *testing.T) {
	vars, envFile, _ := actionEnv(t, env.Env{"CI_REF": "refs/heads/main"})
	t.Setenv("GITENV_FALLBACK_VAR", "CI_REF")
	t.Setenv("GITENV_BRANCH_VAR", "GIT_BRANCH")
	t.Setenv("GITENV_ENV_VAR", "PREVIEW_ENV")
	t.Setenv("GITENV_GROUP_TITLE", "Git env")

	stdout, _, err := execute(t, vars, "run")
	require.NoError(t, err)

	assert.Equal(t, env.Env{"GIT_BRANCH": "main", "PREVIEW_ENV": "b28b7a"}, readFileCommands(t, envFile))
	assert.True(t, strings.HasPrefix(stdout, "::group::Git env\n"))
}

func TestRunLegacyCommands(t *testing.T) {
	stdout, _, err := execute(t, env.Env{"GITHUB_REF": "refs/heads/main"}, "run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "::set-env name=BRANCH_NAME::main\n")
	assert.Contains(t, stdout, "::set-env name=ENV_NAME::b28b7a\n")
	assert.Contains(t, stdout, "::set-output name=env-name::b28b7a\n")
}

func TestExport(t *testing.T) {
	tests := []struct {
		name string
		vars env.Env
		args []string
		want string
	}{
		{
			name: "bash from flag",
			args: []string{"export", "bash", "--ref", "refs/heads/main"},
			want: "export BRANCH_NAME=\"main\";\nexport ENV_NAME=\"b28b7a\";\n",
		},
		{
			name: "fish from fallback",
			vars: env.Env{"GITHUB_REF": "refs/heads/feature/foo"},
			args: []string{"export", "fish"},
			want: "set -gx BRANCH_NAME 'feature/foo';\nset -gx ENV_NAME '87171a';\n",
		},
		{
			name: "dotenv tag",
			args: []string{"export", "dotenv", "--ref", "refs/tags/v1.0"},
			want: "BRANCH_NAME=\"refs/tags/v1.0\"\nENV_NAME=\"10f427\"\n",
		},
		{
			name: "unset",
			args: []string{"export", "zsh", "--unset"},
			want: "unset BRANCH_NAME;\nunset ENV_NAME;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.vars, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestExportLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, env.Env{}, "export", "bash", "--ref", "refs/heads/main")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "gitRef")
	assert.Contains(t, stderr, "gitRef: refs/heads/main")
}

func TestExportErrors(t *testing.T) {
	_, _, err := execute(t, env.Env{}, "export", "powershell", "--ref", "refs/heads/main")
	assert.ErrorContains(t, err, "unsupported shell: powershell")

	stdout, _, err := execute(t, env.Env{}, "export", "bash")
	assert.ErrorContains(t, err, "git reference is required")
	assert.Empty(t, stdout)
}

func TestShowJSON(t *testing.T) {
	stdout, _, err := execute(t, env.Env{}, "show", "--json", "--ref", "refs/heads/main")
	require.NoError(t, err)

	var got ShowOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "refs/heads/main", got.Ref)
	assert.Equal(t, "main", got.BranchName)
	assert.Equal(t, "b28b7a", got.EnvName)
	assert.Equal(t, map[string]string{"BRANCH_NAME": "main", "ENV_NAME": "b28b7a"}, got.Variables)
}

func TestShowHuman(t *testing.T) {
	stdout, _, err := execute(t, env.Env{"GITHUB_REF": "refs/tags/v1.0"}, "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Branch: refs/tags/v1.0 (no refs/heads/ prefix)")
	assert.Contains(t, stdout, "Env name: 10f427")
	assert.Contains(t, stdout, "BRANCH_NAME=refs/tags/v1.0\n  ENV_NAME=10f427\n")
}

func TestConfigJSON(t *testing.T) {
	stdout, _, err := execute(t, env.Env{}, "config", "--json")
	require.NoError(t, err)

	var got ConfigOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "GITHUB_REF", got.FallbackVar)
	assert.Equal(t, "BRANCH_NAME", got.BranchVar)
	assert.Equal(t, "ENV_NAME", got.EnvVar)
	assert.True(t, got.SetOutputs)
	assert.Empty(t, got.ConfigFile)
}

func TestConfigHuman(t *testing.T) {
	stdout, _, err := execute(t, env.Env{}, "config")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Config file: (none)")
	assert.Contains(t, stdout, "Fallback variable: GITHUB_REF")
	assert.Contains(t, stdout, "Set outputs: true")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, env.Env{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", stdout)
}
