// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	goruntime "runtime"
	"time"

	"github.com/invowk/npx/pkg/platform"
	"github.com/invowk/npx/pkg/types"
)

// cancelWaitDelay bounds how long a canceled child may keep running after it
// was asked to stop before it is killed.
const cancelWaitDelay = 5 * time.Second

// extractExitCode determines the exit code from a command execution error.
func extractExitCode(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Command executed but returned non-zero exit code.
		// Signal deaths report -1; surface them as a generic failure.
		exitCode := types.ExitCode(exitErr.ExitCode())
		if validateErr := exitCode.Validate(); validateErr != nil {
			return NewExitCodeResult(types.ExitFailure)
		}
		return NewExitCodeResult(exitCode)
	}

	// The process never started.
	return NewErrorResult(startFailureCode(err), err)
}

// startFailureCode maps a spawn failure to the exit code a shell would use.
func startFailureCode(err error) types.ExitCode {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return types.ExitNotFound
	case errors.Is(err, fs.ErrPermission):
		return types.ExitNotExecutable
	default:
		return types.ExitFailure
	}
}

// configureCancel makes context cancellation interrupt the child instead of
// killing it outright, so it can clean up the way it would on Ctrl-C.
func configureCancel(cmd *exec.Cmd) {
	if goruntime.GOOS == platform.Windows {
		return
	}
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = cancelWaitDelay
}
