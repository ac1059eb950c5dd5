// SPDX-License-Identifier: MPL-2.0

// Package prefix discovers the project install prefix for a working directory
// and the project-local binary directory beneath it.
//
// The prefix is found the way the package manager finds it: a directory that
// is itself inside node_modules resolves to the directory above the outermost
// node_modules; otherwise the nearest ancestor containing package.json or
// node_modules wins. When no ancestor qualifies, the working directory is used.
package prefix
