// SPDX-License-Identifier: MPL-2.0

// Package cmd is the npx command line: flag parsing, configuration and
// logging setup, error rendering and exit-code mapping around the
// resolve-install-run pipeline.
package cmd
