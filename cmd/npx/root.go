// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newRootCommand builds the npx command for app. Flags are only recognized
// before the command; everything after it is forwarded untouched.
func newRootCommand(app *App) *cobra.Command {
	var f cliFlags

	root := &cobra.Command{
		Use:   "npx [options] <command>[@version] [command-arg]...",
		Short: "Execute binaries from npm packages",
		Long: TitleStyle.Render("npx") + SubtitleStyle.Render(" - execute binaries from npm packages") + `

Runs <command> from the project's node_modules/.bin or your PATH, and
installs it into a temporary prefix in the npm cache when it is missing.

` + SubtitleStyle.Render("Examples:") + `
  npx cowsay hello               Run cowsay, installing it if needed
  npx cowsay@1.5.0 hello         Always install the pinned version
  npx -p @angular/cli ng new     Install a package, run one of its bins
  npx -c 'eslint . && tsc'       Run a shell string with package scripts' env
  npx --shell-auto-fallback zsh  Print a command-not-found hook`,
		Args:                  cobra.ArbitraryArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.fallbackRequested = cmd.Flags().Changed("shell-auto-fallback")
			return app.run(cmd.Context(), f, args, cmd.UsageString())
		},
	}

	flags := root.Flags()
	flags.SetInterspersed(false)
	flags.StringArrayVarP(&f.packages, "package", "p", nil, "package to be installed (repeatable)")
	flags.StringVarP(&f.call, "call", "c", "", "execute string as if inside `npm run-script`")
	flags.BoolVar(&f.noInstall, "no-install", false, "skip installation if a package is missing")
	flags.BoolVar(&f.ignoreExisting, "ignore-existing", false, "ignore existing binaries on $PATH or in the local project")
	flags.StringVar(&f.npm, "npm", "", "npm binary to use for internal operations (default \"npm\")")
	flags.StringVar(&f.cache, "cache", "", "location of the npm cache")
	flags.StringVar(&f.userconfig, "userconfig", "", "path to user npmrc")
	flags.StringVar(&f.shell, "shell", "", "shell to execute --call strings with")
	flags.StringVar(&f.shellAutoFallback, "shell-auto-fallback", "", "generate shell code to use npx as the \"command not found\" fallback (bash, zsh or fish)")
	flags.Lookup("shell-auto-fallback").NoOptDefVal = detectShell
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress output from npx itself")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&f.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/npx/config.cue)")

	return root
}

// Execute runs the CLI and exits the process with the resulting code.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	os.Exit(execute(context.Background(), app, os.Args[1:]))
}

// execute runs the root command with args and returns the exit code.
func execute(ctx context.Context, app *App, args []string) int {
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			// Pipeline failures were rendered already.
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code.OrDefault())
	}
	return 1
}
