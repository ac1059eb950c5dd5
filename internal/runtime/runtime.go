// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Shell mode constants for --call execution.
const (
	// ShellNative runs --call strings through the host shell.
	ShellNative ShellMode = "native"
	// ShellVirtual runs --call strings in the embedded mvdan/sh interpreter.
	ShellVirtual ShellMode = "virtual"
)

// ErrInvalidShellMode is returned when a ShellMode value is not recognized.
var ErrInvalidShellMode = errors.New("invalid shell mode")

type (
	// ShellMode selects how --call strings are executed.
	ShellMode string

	// IOContext holds the standard streams handed to the child.
	IOContext struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Invocation is a fully resolved command ready to run.
	Invocation struct {
		// Path is the resolved executable. Ignored when Call is set.
		Path string
		// Args are forwarded to the executable. Ignored when Call is set.
		Args []string
		// Call is a shell command string to run instead of Path.
		Call string
		// Env is the complete environment of the child.
		Env Env
		// Dir is the working directory of the child.
		Dir string
		// Started, when set, is called once the child process (or the
		// interpreter) is running, before waiting for it to finish.
		Started func()
	}

	// Runtime launches a resolved invocation and waits for it to finish.
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Execute runs the invocation with the runtime's stdio.
		Execute(ctx context.Context, inv Invocation) *Result
	}
)

// IsValid returns whether the ShellMode is recognized, and a list of
// validation errors if it is not.
func (m ShellMode) IsValid() (bool, []error) {
	switch m {
	case ShellNative, ShellVirtual:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidShellMode, m, ShellNative, ShellVirtual)}
	}
}

// ForInvocation returns the runtime that should execute inv: the virtual
// shell for --call strings when mode is ShellVirtual, the native runtime otherwise.
func ForInvocation(inv Invocation, mode ShellMode, native, virtual Runtime) Runtime {
	if inv.Call != "" && mode == ShellVirtual && virtual != nil {
		return virtual
	}
	return native
}
