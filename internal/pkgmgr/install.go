// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/pkg/platform"
	"github.com/invowk/npx/pkg/types"
)

// PrefixDirName is the ephemeral install prefix inside the package cache.
const PrefixDirName = "_npx"

// ErrInstallFailed is the sentinel error wrapped by InstallError.
var ErrInstallFailed = errors.New("install failed")

// InstallError is returned when the install subcommand exits non-zero.
type InstallError struct {
	Specs []string
	Code  types.ExitCode
	Err   error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	return fmt.Sprintf("Install for %s failed with code %d", strings.Join(e.Specs, ", "), e.Code)
}

// Unwrap returns ErrInstallFailed for errors.Is() compatibility.
func (e *InstallError) Unwrap() []error { return []error{ErrInstallFailed, e.Err} }

// EphemeralPrefix returns the install prefix for cache.
func EphemeralPrefix(cache string) string {
	return filepath.Join(cache, PrefixDirName)
}

// lockFilePath returns the lock file guarding the prefix under cache.
func lockFilePath(cache string) string {
	return filepath.Join(cache, PrefixDirName+".lock")
}

// BinDir returns the directory installed executables land in for cache.
func (c *Client) BinDir(cache string) string {
	return platform.PrefixBinDir(EphemeralPrefix(cache), c.goos)
}

// BuildInstallArgs returns the install argument list. The result always starts
// with "install" and ends with "--loglevel error --json". cache and userconfig
// are forwarded only when non-empty.
func BuildInstallArgs(specs []string, prefix, cache, userconfig string) []string {
	args := make([]string, 0, len(specs)+10)
	args = append(args, "install")
	args = append(args, specs...)
	args = append(args, "--global", "--prefix", prefix)
	if cache != "" {
		args = append(args, "--cache", cache)
	}
	if userconfig != "" {
		args = append(args, "--userconfig", userconfig)
	}
	return append(args, "--loglevel", "error", "--json")
}

// Install installs specs into the ephemeral prefix under cache and returns the
// directory holding their executables. The binary directory is removed first
// so executables of an earlier install never linger.
//
// With locking enabled the prefix stays locked after a successful install
// until the returned release func is called, so callers can look up and start
// the installed command before another invocation wipes it. release is nil
// when err is not.
//
// The install inherits stdin and stderr; its JSON stdout is only logged.
func (c *Client) Install(ctx context.Context, env runtime.Env, specs []string, cache string) (bins string, release func(), err error) {
	var lock *installLock
	if c.lock {
		lock, err = acquireInstallLock(cache)
		if err != nil {
			slog.Debug("install lock unavailable, continuing unlocked", "error", err)
		}
	}

	bins, err = c.install(ctx, env, specs, cache)
	if err != nil {
		lock.Release()
		return "", nil, err
	}
	return bins, lock.Release, nil
}

func (c *Client) install(ctx context.Context, env runtime.Env, specs []string, cache string) (string, error) {
	prefix := EphemeralPrefix(cache)
	bins := platform.PrefixBinDir(prefix, c.goos)

	if err := c.fs.RemoveAll(bins); err != nil {
		return "", fmt.Errorf("remove %s: %w", bins, err)
	}

	npmPath, err := c.resolve(env)
	if err != nil {
		return "", err
	}

	args := BuildInstallArgs(specs, prefix, c.cache, c.userconfig)
	slog.Debug("installing packages", "specs", specs, "prefix", prefix)

	var stdout bytes.Buffer
	err = c.spawn(ctx, runtime.Process{
		Path:   npmPath,
		Args:   args,
		Env:    env,
		Dir:    c.dir,
		Stdin:  c.stdin,
		Stdout: &stdout,
		Stderr: c.stderr,
	})
	if err != nil {
		var procErr *runtime.ProcessError
		if errors.As(err, &procErr) {
			return "", &InstallError{Specs: specs, Code: procErr.Code, Err: err}
		}
		return "", err
	}

	logInstallSummary(stdout.Bytes())
	return bins, nil
}
