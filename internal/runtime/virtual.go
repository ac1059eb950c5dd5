// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/npx/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes --call strings using the embedded mvdan/sh
// interpreter, so they behave the same on hosts without a POSIX shell.
type VirtualRuntime struct {
	IO IOContext
}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime(io IOContext) *VirtualRuntime {
	return &VirtualRuntime{IO: io}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return string(ShellVirtual)
}

// Execute interprets inv.Call with inv.Env as the shell environment.
func (r *VirtualRuntime) Execute(ctx context.Context, inv Invocation) *Result {
	if inv.Call == "" {
		return NewErrorResult(1, errors.New("virtual runtime requires a --call string"))
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(inv.Call), "call")
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse --call string: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(inv.Env.Environ()...)),
		interp.StdIO(r.IO.Stdin, r.IO.Stdout, r.IO.Stderr),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if inv.Started != nil {
		inv.Started()
	}
	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("--call execution failed: %w", err))
	}
	return NewSuccessResult()
}
