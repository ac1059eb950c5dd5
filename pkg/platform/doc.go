// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes the per-OS conventions the resolver depends on:
// where an installation prefix keeps its executables, where a project keeps
// its local binaries, and how PATH-style lists are joined.
package platform
