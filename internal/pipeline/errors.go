// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"

	"github.com/invowk/npx/internal/pkgmgr"
	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/pkg/types"
)

// Error kinds.
const (
	// KindUsage is a missing command or package, or an unsupported fallback shell.
	KindUsage Kind = iota
	// KindNotFound is a command absent from PATH with installing disallowed.
	KindNotFound
	// KindInstall is a failed install subcommand.
	KindInstall
	// KindChild is the resolved command exiting non-zero. It is not reported.
	KindChild
	// KindExternalTool is a failed package-manager query or env dump.
	KindExternalTool
	// KindSpawn is a resolved command that could not be started.
	KindSpawn
)

var (
	// ErrMissingCommand is returned when no command or package was supplied.
	ErrMissingCommand = errors.New("you must supply a command")
	// ErrChildFailed is wrapped by KindChild errors.
	ErrChildFailed = errors.New("command exited with a non-zero status")
)

type (
	// Kind classifies pipeline failures.
	Kind int

	// Error is a pipeline failure with the exit code the process should use.
	Error struct {
		Kind Kind
		Code types.ExitCode
		Err  error
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindNotFound:
		return "not-found"
	case KindInstall:
		return "install"
	case KindChild:
		return "child"
	case KindExternalTool:
		return "external-tool"
	case KindSpawn:
		return "spawn"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Silent reports whether the failure should be reported by exit code only.
func (e *Error) Silent() bool { return e.Kind == KindChild }

// ExitCode returns the exit code for err: the code carried by a pipeline
// Error (1 when unset), 0 for nil, and 1 otherwise.
func ExitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Code.OrDefault()
	}
	return types.ExitFailure
}

func usageError(err error) *Error {
	return &Error{Kind: KindUsage, Code: types.ExitFailure, Err: err}
}

func notFoundError(err error) *Error {
	return &Error{Kind: KindNotFound, Code: types.ExitNotFound, Err: err}
}

func childError(code types.ExitCode) *Error {
	return &Error{Kind: KindChild, Code: code, Err: fmt.Errorf("%w (exit code %d)", ErrChildFailed, code)}
}

// externalToolError carries a subprocess failure's code verbatim, or 1.
func externalToolError(err error) *Error {
	code := types.ExitFailure
	var procErr *runtime.ProcessError
	if errors.As(err, &procErr) {
		code = procErr.Code
	}
	return &Error{Kind: KindExternalTool, Code: code.OrDefault(), Err: err}
}

// installError classifies a failure of the install step.
func installError(err error) *Error {
	var instErr *pkgmgr.InstallError
	if errors.As(err, &instErr) {
		return &Error{Kind: KindInstall, Code: instErr.Code.OrDefault(), Err: err}
	}
	return externalToolError(err)
}

// asPipelineError returns err unchanged when it already is a pipeline Error.
func asPipelineError(err error, classify func(error) *Error) error {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr
	}
	return classify(err)
}
