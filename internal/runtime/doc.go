// SPDX-License-Identifier: MPL-2.0

// Package runtime provides process execution for npx: the environment block
// handed to child processes, executable lookup against an explicit PATH, and
// the runtimes that launch the resolved command.
//
// Two runtime implementations are available:
//   - native: executes the resolved binary directly, or a --call string through
//     the host shell (sh/bash/cmd)
//   - virtual: executes a --call string using an embedded shell interpreter (mvdan/sh)
//
// Env is the value threaded through resolution. It is never read from or
// written back to the process environment implicitly; callers build one with
// EnvFromEnviron and pass it explicitly.
//
// Exec and Spawn run auxiliary package-manager processes and report non-zero
// exits as *ProcessError.
package runtime
