// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// ErrCommandNotFound is the sentinel error wrapped by CommandNotFoundError.
var ErrCommandNotFound = errors.New("command not found")

// CommandNotFoundError is returned when a command cannot be resolved on the
// search path of an environment.
type CommandNotFoundError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Name)
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// LookPath resolves name against the PATH of env, the way a shell would.
// Names containing a path separator are resolved relative to dir.
// On Windows PATHEXT from env is honored.
func LookPath(name string, env Env, dir string) (string, error) {
	if name == "" {
		return "", &CommandNotFoundError{Name: name}
	}
	path, err := interp.LookPathDir(dir, expand.ListEnviron(env.Environ()...), name)
	if err != nil {
		return "", &CommandNotFoundError{Name: name, Err: err}
	}
	return path, nil
}
