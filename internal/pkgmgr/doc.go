// SPDX-License-Identifier: MPL-2.0

// Package pkgmgr drives the package manager executable: it locates the shared
// package cache, installs specifiers into the ephemeral "_npx" prefix under
// that cache, and dumps the environment scripts would run with.
//
// The executable is resolved against the environment passed to each call,
// so a package manager provided by the project-local binary directory wins
// over a global one.
package pkgmgr
