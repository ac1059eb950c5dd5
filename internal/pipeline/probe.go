// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"log/slog"

	"github.com/invowk/npx/internal/runtime"
)

// LookPathFunc resolves an executable name against an environment.
type LookPathFunc func(name string, env runtime.Env, dir string) (string, error)

// FindExisting returns the path of opts.Command on the PATH of env, or "" when
// it must be installed. Options that pin a version or name packages always
// report "". A missing command with installing disallowed is a KindNotFound
// error.
func FindExisting(opts Options, env runtime.Env, dir string, lookPath LookPathFunc) (string, error) {
	if opts.forcesInstall() {
		slog.Debug("skipping existing command lookup",
			"cmdHadVersion", opts.CmdHadVersion,
			"packageRequested", opts.PackageRequested,
			"ignoreExisting", opts.IgnoreExisting)
		return "", nil
	}

	path, err := lookPath(opts.Command, env, dir)
	if err == nil {
		slog.Debug("using existing command", "command", opts.Command, "path", path)
		return path, nil
	}
	if !errors.Is(err, runtime.ErrCommandNotFound) {
		return "", err
	}
	if !opts.Install {
		return "", notFoundError(err)
	}
	return "", nil
}
