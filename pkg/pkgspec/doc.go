// SPDX-License-Identifier: MPL-2.0

// Package pkgspec parses package specifiers as accepted on the command line
// (registry names with optional version, scoped names, git and hosted
// shorthands, tarball URLs, and local paths) and derives the executable name
// a specifier most likely provides.
package pkgspec
