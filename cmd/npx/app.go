// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/invowk/npx/internal/config"
	"github.com/invowk/npx/internal/fallback"
	"github.com/invowk/npx/internal/pipeline"
	"github.com/invowk/npx/internal/pkgmgr"
	"github.com/invowk/npx/internal/prefix"
	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/internal/updatecheck"
	"github.com/invowk/npx/pkg/types"
)

// noticeGrace is how long the CLI waits for a pending update check after
// the command finished.
const noticeGrace = 500 * time.Millisecond

type (
	// Runner runs one invocation.
	Runner interface {
		Run(ctx context.Context, opts pipeline.Options, base runtime.Env, cwd string) error
	}

	// RunnerFactory builds the Runner for an invocation.
	RunnerFactory func(opts pipeline.Options, cfg *config.Config, streams runtime.IOContext, cwd string) Runner

	// App is the composition root of the CLI.
	App struct {
		config           config.Provider
		newRunner        RunnerFactory
		newUpdateChecker func(*config.Config) (UpdateChecker, error)
		stdin            io.Reader
		stdout           io.Writer
		stderr           io.Writer
		environ          func() []string
		getwd            func() (string, error)
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config           config.Provider
		NewRunner        RunnerFactory
		NewUpdateChecker func(*config.Config) (UpdateChecker, error)
		Stdin            io.Reader
		Stdout           io.Writer
		Stderr           io.Writer
		Environ          func() []string
		Getwd            func() (string, error)
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		config:           deps.Config,
		newRunner:        deps.NewRunner,
		newUpdateChecker: deps.NewUpdateChecker,
		stdin:            deps.Stdin,
		stdout:           deps.Stdout,
		stderr:           deps.Stderr,
		environ:          deps.Environ,
		getwd:            deps.Getwd,
	}
	if app.config == nil {
		app.config = config.NewProvider()
	}
	if app.newRunner == nil {
		app.newRunner = newPipelineRunner
	}
	if app.newUpdateChecker == nil {
		app.newUpdateChecker = newUpdateChecker
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.environ == nil {
		app.environ = os.Environ
	}
	if app.getwd == nil {
		app.getwd = os.Getwd
	}
	return app
}

// newPipelineRunner wires the production collaborators of the pipeline.
func newPipelineRunner(opts pipeline.Options, cfg *config.Config, streams runtime.IOContext, cwd string) Runner {
	client := pkgmgr.NewClient(opts.NPM,
		pkgmgr.WithCache(opts.Cache),
		pkgmgr.WithUserconfig(opts.Userconfig),
		pkgmgr.WithDir(cwd),
		pkgmgr.WithInstallLock(cfg.Install.Lock),
		pkgmgr.WithStdio(streams.Stdin, streams.Stderr),
	)
	return pipeline.New(pipeline.Deps{
		Resolver:       prefix.NewResolver(nil),
		PackageManager: client,
		Native:         runtime.NewNativeRuntime(streams, opts.Shell),
		Virtual:        runtime.NewVirtualRuntime(streams),
		Fallback:       fallback.Snippet,
		Stdout:         streams.Stdout,
	})
}

// run executes one invocation and returns nil or an *ExitError whose
// message has already been written to stderr.
func (a *App) run(ctx context.Context, f cliFlags, args []string, usage string) error {
	cfg, err := a.config.Load(ctx, config.LoadOptions{ConfigFilePath: f.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, f.verbose))
		cfg = config.DefaultConfig()
	}

	verbose := f.verbose || cfg.UI.Verbose
	slog.SetDefault(newLogger(a.stderr, logLevel(verbose, f.quiet)))

	base := runtime.EnvFromEnviron(a.environ())

	opts, err := buildOptions(f, args, cfg, func(name string) string { return base[name] })
	if err != nil {
		renderError(a.stderr, err, opts, verbose, cfg.UI.ColorScheme)
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	cwd, err := a.getwd()
	if err != nil {
		renderError(a.stderr, err, opts, verbose, cfg.UI.ColorScheme)
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	var notices <-chan *updatecheck.Notice
	if cfg.UpdateCheck.Enabled && opts.ShellAutoFallback == nil && !f.quiet {
		if checker, err := a.newUpdateChecker(cfg); err != nil {
			slog.Debug("update check disabled", "error", err)
		} else {
			notices = startUpdateCheck(ctx, checker, Version)
		}
	}

	streams := runtime.IOContext{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}
	runErr := a.newRunner(opts, cfg, streams, cwd).Run(ctx, opts, base, cwd)

	if runErr != nil && !pipeline.IsSilent(runErr) {
		renderError(a.stderr, runErr, opts, verbose, cfg.UI.ColorScheme)
		if errors.Is(runErr, pipeline.ErrMissingCommand) {
			fmt.Fprint(a.stderr, "\n"+usage)
		}
	}

	if notice := collectNotice(notices, noticeGrace); notice != nil {
		renderNotice(a.stderr, notice)
	}

	if runErr != nil {
		return &ExitError{Code: pipeline.ExitCode(runErr), Err: runErr}
	}
	return nil
}
