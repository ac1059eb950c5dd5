// SPDX-License-Identifier: MPL-2.0

package runtime

import "github.com/invowk/npx/pkg/types"

// Result contains the outcome of running the resolved command.
type Result struct {
	// ExitCode is the exit code of the command.
	ExitCode types.ExitCode
	// Error is set when the command could not be run at all. A command that
	// ran and exited non-zero has a nil Error.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the command ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
