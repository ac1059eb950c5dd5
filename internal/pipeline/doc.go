// SPDX-License-Identifier: MPL-2.0

// Package pipeline resolves a command to an executable, installing its
// package into an ephemeral prefix when needed, and runs it.
//
// A run proceeds through fixed stages: the shell fallback short-circuit,
// argument validation, project-local binary discovery, then command
// resolution and environment construction in parallel, and finally execution.
// The environment is threaded explicitly as a runtime.Env value; the process
// environment is never modified.
//
// Every failure leaves the pipeline as an *Error carrying a Kind and the exit
// code the process should end with.
package pipeline
