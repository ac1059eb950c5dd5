// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/pkg/types"

	"golang.org/x/sync/errgroup"
)

type (
	// PathResolver finds the project-local binary directory for a working directory.
	PathResolver interface {
		LocalBinDir(cwd string) (string, error)
	}

	// PackageManager runs package-manager subcommands with an explicit environment.
	PackageManager interface {
		ResolveCache(ctx context.Context, env runtime.Env) (string, error)
		// Install returns the directory of the installed executables and a
		// release func that frees the install prefix for other invocations.
		Install(ctx context.Context, env runtime.Env, specs []string, cache string) (bins string, release func(), err error)
		RunEnv(ctx context.Context, env runtime.Env) (runtime.Env, error)
	}

	// FallbackFunc renders the fallback snippet for shell, falling back to
	// envShell (the SHELL variable) when shell names no supported shell.
	FallbackFunc func(shell, envShell string) (string, error)

	// Deps are the collaborators of a Pipeline.
	Deps struct {
		Resolver       PathResolver
		PackageManager PackageManager
		LookPath       LookPathFunc
		Native         runtime.Runtime
		Virtual        runtime.Runtime
		Fallback       FallbackFunc
		// Stdout receives the fallback snippet.
		Stdout io.Writer
	}

	// Pipeline resolves and runs one invocation.
	Pipeline struct {
		deps Deps
	}

	// resolvedCommand is the outcome of command resolution.
	resolvedCommand struct {
		path string
		// installBin is the ephemeral binary directory when an install ran.
		installBin string
		// release frees the install prefix. Set only when an install ran.
		release func()
	}
)

// New creates a Pipeline. A nil LookPath uses runtime.LookPath.
func New(deps Deps) *Pipeline {
	if deps.LookPath == nil {
		deps.LookPath = runtime.LookPath
	}
	if deps.Stdout == nil {
		deps.Stdout = io.Discard
	}
	return &Pipeline{deps: deps}
}

// Run executes opts in cwd, starting from the base environment. It returns
// nil when the command ran and exited 0, and an *Error otherwise.
func (p *Pipeline) Run(ctx context.Context, opts Options, base runtime.Env, cwd string) error {
	if opts.ShellAutoFallback != nil {
		return p.printFallback(*opts.ShellAutoFallback, base["SHELL"])
	}

	if opts.Command == "" || len(opts.Packages) == 0 {
		return usageError(ErrMissingCommand)
	}

	localBin, err := p.deps.Resolver.LocalBinDir(cwd)
	if err != nil {
		return externalToolError(fmt.Errorf("resolve local bin directory: %w", err))
	}
	env := base.WithPath(runtime.PrependPath(base.Path(), localBin))
	slog.Debug("project-local binaries", "dir", localBin)

	var (
		cmd      resolvedCommand
		childEnv runtime.Env
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cmd, err = p.resolveCommand(gctx, opts, env, cwd)
		return err
	})
	g.Go(func() error {
		var err error
		childEnv, err = p.resolveEnv(gctx, opts, env)
		return err
	})
	err = g.Wait()
	// The install prefix stays locked until the child has started.
	if cmd.release != nil {
		release := sync.OnceFunc(cmd.release)
		defer release()
		cmd.release = release
	}
	if err != nil {
		return err
	}

	// The PATH of the resolution environment is reasserted over whatever the
	// environment step produced, with the install directory after local bins.
	childEnv = childEnv.WithPath(runtime.PrependPath(base.Path(), localBin, cmd.installBin))

	return p.execute(ctx, opts, runtime.Invocation{
		Path:    cmd.path,
		Args:    opts.CmdOpts,
		Call:    opts.Call,
		Env:     childEnv,
		Dir:     cwd,
		Started: cmd.release,
	})
}

func (p *Pipeline) printFallback(shell, envShell string) error {
	snippet, err := p.deps.Fallback(shell, envShell)
	if err != nil {
		return usageError(err)
	}
	if _, err := fmt.Fprintln(p.deps.Stdout, snippet); err != nil {
		return &Error{Kind: KindUsage, Code: types.ExitFailure, Err: err}
	}
	return nil
}

// resolveCommand finds opts.Command on PATH or installs opts.Packages and
// looks it up again with the ephemeral binary directory searched first,
// ahead of the project-local one. When an install ran, the result carries
// its release func even on error.
func (p *Pipeline) resolveCommand(ctx context.Context, opts Options, env runtime.Env, cwd string) (resolvedCommand, error) {
	existing, err := FindExisting(opts, env, cwd, p.deps.LookPath)
	if err != nil {
		return resolvedCommand{}, asPipelineError(err, externalToolError)
	}
	if existing != "" {
		return resolvedCommand{path: existing}, nil
	}

	cache, err := p.deps.PackageManager.ResolveCache(ctx, env)
	if err != nil {
		return resolvedCommand{}, externalToolError(err)
	}

	bins, release, err := p.deps.PackageManager.Install(ctx, env, opts.Packages, cache)
	if err != nil {
		return resolvedCommand{}, installError(err)
	}
	resolved := resolvedCommand{installBin: bins, release: release}

	searchEnv := env.WithPath(runtime.PrependPath(env.Path(), bins))
	path, err := p.deps.LookPath(opts.Command, searchEnv, cwd)
	if err != nil {
		// Installed, yet the packages provide no such command.
		return resolved, &Error{Kind: KindNotFound, Code: types.ExitFailure, Err: err}
	}
	slog.Debug("using installed command", "command", opts.Command, "path", path)
	resolved.path = path
	return resolved, nil
}

// resolveEnv returns the child environment before PATH is reasserted: the
// package manager's script environment for --call, env itself otherwise.
func (p *Pipeline) resolveEnv(ctx context.Context, opts Options, env runtime.Env) (runtime.Env, error) {
	if opts.Call == "" {
		return env, nil
	}
	scriptEnv, err := p.deps.PackageManager.RunEnv(ctx, env)
	if err != nil {
		return nil, externalToolError(err)
	}
	return scriptEnv, nil
}

func (p *Pipeline) execute(ctx context.Context, opts Options, inv runtime.Invocation) error {
	rt := runtime.ForInvocation(inv, opts.ShellMode, p.deps.Native, p.deps.Virtual)
	slog.Debug("running command", "runtime", rt.Name(), "path", inv.Path, "call", inv.Call)

	result := rt.Execute(ctx, inv)
	if result.Error != nil {
		code := result.ExitCode.OrDefault()
		if code == types.ExitNotFound {
			return &Error{Kind: KindNotFound, Code: code, Err: &runtime.CommandNotFoundError{Name: opts.Command, Err: result.Error}}
		}
		return &Error{Kind: KindSpawn, Code: code, Err: result.Error}
	}
	if !result.ExitCode.IsSuccess() {
		return childError(result.ExitCode)
	}
	return nil
}

// IsSilent reports whether err should be reported by exit code only.
func IsSilent(err error) bool {
	var pErr *Error
	return errors.As(err, &pErr) && pErr.Silent()
}
