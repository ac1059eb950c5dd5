// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/invowk/npx/pkg/platform"
)

// NativeRuntime executes the resolved binary directly, or a --call string
// through the host shell.
type NativeRuntime struct {
	IO IOContext
	// Shell overrides the shell used for --call strings
	Shell string
}

// NewNativeRuntime creates a new native runtime
func NewNativeRuntime(io IOContext, shell string) *NativeRuntime {
	return &NativeRuntime{IO: io, Shell: shell}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return string(ShellNative)
}

// Execute runs the invocation, inheriting the runtime's stdio.
func (r *NativeRuntime) Execute(ctx context.Context, inv Invocation) *Result {
	path, args := inv.Path, inv.Args
	if inv.Call != "" {
		shell, err := r.getShell(inv.Env)
		if err != nil {
			return NewErrorResult(1, err)
		}
		path = shell
		args = append(r.getShellArgs(shell), inv.Call)
	}
	if path == "" {
		return NewErrorResult(1, errors.New("no command to execute"))
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = inv.Env.Environ()
	cmd.Dir = inv.Dir
	cmd.Stdin = r.IO.Stdin
	cmd.Stdout = r.IO.Stdout
	cmd.Stderr = r.IO.Stderr
	configureCancel(cmd)

	err := cmd.Start()
	if err == nil {
		if inv.Started != nil {
			inv.Started()
		}
		err = cmd.Wait()
	}
	result := extractExitCode(err)
	if result.Error != nil {
		result.Error = fmt.Errorf("failed to execute %s: %w", path, result.Error)
	}
	return result
}

// getShell determines which shell runs --call strings
func (r *NativeRuntime) getShell(env Env) (string, error) {
	shell := r.Shell
	if shell == "" {
		if goruntime.GOOS == platform.Windows {
			shell = env["ComSpec"]
			if shell == "" {
				shell = "cmd.exe"
			}
		} else {
			shell = "sh"
		}
	}
	if filepath.IsAbs(shell) {
		return shell, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return LookPath(shell, env, cwd)
}

// getShellArgs returns the arguments placed before the --call string
func (r *NativeRuntime) getShellArgs(shell string) []string {
	base := filepath.Base(shell)
	// Also handle Windows paths on Unix systems
	if lastSlash := strings.LastIndex(base, "\\"); lastSlash >= 0 {
		base = base[lastSlash+1:]
	}
	base = strings.TrimSuffix(strings.ToLower(base), ".exe")

	switch base {
	case "cmd":
		return []string{"/d", "/s", "/c"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
