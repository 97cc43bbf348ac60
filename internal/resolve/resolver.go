package resolve

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/unrss/gitenv/internal/env"
)

// Default variable names.
const (
	DefaultFallbackVar = "GITHUB_REF"
	DefaultBranchVar   = "BRANCH_NAME"
	DefaultEnvVar      = "ENV_NAME"
)

// ExportFunc publishes variables to the calling environment. It receives
// every variable in one call and must publish all of them or none.
type ExportFunc func(vars env.Env) error

// Result holds the values derived from one reference.
type Result struct {
	Ref        string `json:"ref"`
	BranchName string `json:"branch_name"`
	EnvName    string `json:"env_name"`
}

// Resolver derives and publishes the git env. Zero-valued names fall back
// to the Default* constants.
type Resolver struct {
	// Env is where FallbackVar is looked up. Nil means no fallback.
	Env env.Reader

	FallbackVar string
	BranchVar   string
	EnvVar      string

	// Export receives BRANCH_NAME and ENV_NAME together from Publish.
	Export ExportFunc

	Logger zerolog.Logger
}

// New returns a Resolver with default variable names and a disabled logger.
func New(reader env.Reader, export ExportFunc) *Resolver {
	return &Resolver{
		Env:         reader,
		FallbackVar: DefaultFallbackVar,
		BranchVar:   DefaultBranchVar,
		EnvVar:      DefaultEnvVar,
		Export:      export,
		Logger:      zerolog.Nop(),
	}
}

// Ref returns input when non-empty, otherwise the fallback variable.
func (r *Resolver) Ref(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	if r.Env != nil {
		if ref := r.Env.Getenv(r.fallbackVar()); ref != "" {
			return ref, nil
		}
	}
	return "", &ResolutionError{Err: fmt.Errorf("%w: no explicit value and %s is empty", ErrMissingRef, r.fallbackVar())}
}

// Resolve derives the branch name and env name without publishing them.
func (r *Resolver) Resolve(input string) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{}
			err = &ResolutionError{Ref: input, Err: fmt.Errorf("unexpected failure: %v", p)}
		}
	}()

	ref, err := r.Ref(input)
	if ref == "" {
		r.Logger.Info().Msg("gitRef: <empty>")
	} else {
		r.Logger.Info().Msgf("gitRef: %s", ref)
	}
	if err != nil {
		return Result{}, err
	}

	branch := BranchName(ref)
	r.Logger.Info().Msgf("branch: %s", branch)

	envName := EnvName(branch)
	r.Logger.Info().Msgf("envName: %s", envName)

	return Result{Ref: ref, BranchName: branch, EnvName: envName}, nil
}

// Publish resolves input and exports both variables through a single
// Export call. Nothing is exported unless both values were derived.
func (r *Resolver) Publish(input string) (Result, error) {
	res, err := r.Resolve(input)
	if err != nil {
		return Result{}, err
	}
	if r.Export == nil {
		return res, nil
	}

	vars := r.Vars(res)
	if err := r.Export(vars); err != nil {
		return Result{}, &ResolutionError{Ref: res.Ref, Err: fmt.Errorf("export %s and %s: %w", r.branchVar(), r.envVar(), err)}
	}
	r.Logger.Debug().Strs("names", vars.Keys()).Msg("exported variables")

	return res, nil
}

// Vars returns the result as the variables Publish exports.
func (r *Resolver) Vars(res Result) env.Env {
	return env.Env{
		r.branchVar(): res.BranchName,
		r.envVar():    res.EnvName,
	}
}

func (r *Resolver) fallbackVar() string {
	if r.FallbackVar == "" {
		return DefaultFallbackVar
	}
	return r.FallbackVar
}

func (r *Resolver) branchVar() string {
	if r.BranchVar == "" {
		return DefaultBranchVar
	}
	return r.BranchVar
}

func (r *Resolver) envVar() string {
	if r.EnvVar == "" {
		return DefaultEnvVar
	}
	return r.EnvVar
}
