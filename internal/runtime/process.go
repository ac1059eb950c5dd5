// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/invowk/npx/pkg/types"
)

// ErrProcessFailed is the sentinel error wrapped by ProcessError.
var ErrProcessFailed = errors.New("process failed")

type (
	// Process describes an auxiliary process run to completion.
	Process struct {
		// Path is the resolved executable.
		Path string
		// Args are the arguments, not including the executable.
		Args []string
		// Env is the complete environment of the process.
		Env Env
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Stdin, Stdout and Stderr are wired to the process when non-nil.
		// A nil Stdout or Stderr discards that stream.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ProcessError is returned when a process exits with a non-zero status.
	ProcessError struct {
		Path   string
		Args   []string
		Code   types.ExitCode
		Stderr string
	}
)

// Error implements the error interface.
func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command failed: %s %s (exit code %d)", e.Path, strings.Join(e.Args, " "), e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

// Unwrap returns ErrProcessFailed for errors.Is() compatibility.
func (e *ProcessError) Unwrap() error { return ErrProcessFailed }

// Exec runs p and returns its standard output. Standard error is captured for
// the error message and also forwarded to p.Stderr when set.
func Exec(ctx context.Context, p Process) (string, error) {
	var stdout, stderr bytes.Buffer
	p.Stdout = &stdout
	if p.Stderr != nil {
		p.Stderr = io.MultiWriter(&stderr, p.Stderr)
	} else {
		p.Stderr = &stderr
	}

	if err := Spawn(ctx, p); err != nil {
		var procErr *ProcessError
		if errors.As(err, &procErr) {
			procErr.Stderr = stderr.String()
		}
		return "", err
	}
	return stdout.String(), nil
}

// Spawn runs p to completion with the configured stdio.
// A non-zero exit is reported as *ProcessError; failure to start the process
// is returned wrapped, preserving exec.ErrNotFound and fs errors.
func Spawn(ctx context.Context, p Process) error {
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Env = p.Env.Environ()
	cmd.Dir = p.Dir
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	configureCancel(cmd)

	result := extractExitCode(cmd.Run())
	if result.Error != nil {
		return fmt.Errorf("failed to start %s: %w", p.Path, result.Error)
	}
	if !result.ExitCode.IsSuccess() {
		return &ProcessError{Path: p.Path, Args: p.Args, Code: result.ExitCode}
	}
	return nil
}
