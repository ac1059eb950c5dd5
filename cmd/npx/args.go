// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/npx/internal/config"
	"github.com/invowk/npx/internal/pipeline"
	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/pkg/pkgspec"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// detectShell is the value of a bare --shell-auto-fallback: the shell is
// taken from the next argument or from SHELL.
const detectShell = "auto"

// cliFlags holds the raw flag values of one invocation.
type cliFlags struct {
	packages          []string
	call              string
	noInstall         bool
	ignoreExisting    bool
	npm               string
	cache             string
	userconfig        string
	shell             string
	shellAutoFallback string
	// fallbackRequested is set when --shell-auto-fallback appeared at all.
	fallbackRequested bool
	quiet             bool
	verbose           bool
	configFile        string
}

// buildOptions derives the immutable pipeline options from flags, the
// positional arguments, and configuration defaults. getenv expands
// variables in the first word of --call.
func buildOptions(f cliFlags, args []string, cfg *config.Config, getenv func(string) string) (pipeline.Options, error) {
	if f.fallbackRequested {
		sh := f.shellAutoFallback
		if sh == detectShell {
			sh = ""
			// "--shell-auto-fallback bash" leaves the shell as a positional.
			if len(args) > 0 {
				sh = args[0]
			}
		}
		return pipeline.Options{ShellAutoFallback: &sh}, nil
	}

	opts := pipeline.Options{
		Install:        !f.noInstall,
		IgnoreExisting: f.ignoreExisting,
		Shell:          f.shell,
		ShellMode:      runtime.ShellMode(cfg.Call.Shell),
		NPM:            firstNonEmpty(f.npm, cfg.NPM),
		Cache:          firstNonEmpty(f.cache, cfg.Cache),
		Userconfig:     firstNonEmpty(f.userconfig, cfg.Userconfig),
	}

	switch {
	case f.call != "":
		name, err := callCommandName(f.call, getenv)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("parse --call %q: %w", f.call, err)
		}
		opts.Call = f.call
		opts.Command = name
		opts.PackageRequested = len(f.packages) > 0
		opts.Packages = f.packages
		if !opts.PackageRequested && opts.Command != "" {
			opts.Packages = []string{opts.Command}
		}
		opts.CmdOpts = args

	case len(f.packages) > 0:
		opts.PackageRequested = true
		opts.Packages = f.packages
		if len(args) > 0 {
			opts.Command = args[0]
			opts.CmdOpts = args[1:]
		}

	case len(args) > 0:
		spec, err := pkgspec.Parse(args[0])
		if err != nil {
			return pipeline.Options{}, err
		}
		name, err := spec.CommandName()
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Command = name
		opts.Packages = []string{spec.Raw}
		opts.CmdHadVersion = spec.HasVersion()
		opts.CmdOpts = args[1:]
	}

	return opts, nil
}

// callCommandName returns the expanded name of the first simple command in
// a shell string, skipping leading assignments. It is empty when the string
// runs no simple command.
func callCommandName(call string, getenv func(string) string) (string, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(call), "")
	if err != nil {
		return "", err
	}

	var first *syntax.Word
	syntax.Walk(file, func(node syntax.Node) bool {
		if first != nil {
			return false
		}
		if ce, ok := node.(*syntax.CallExpr); ok && len(ce.Args) > 0 {
			first = ce.Args[0]
			return false
		}
		return true
	})
	if first == nil {
		return "", nil
	}
	return expand.Literal(&expand.Config{Env: expand.FuncEnviron(getenv)}, first)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
