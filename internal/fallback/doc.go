// SPDX-License-Identifier: MPL-2.0

// Package fallback renders shell snippets that hand unknown commands to npx
// from an interactive shell. Bash, Zsh and Fish are supported.
package fallback
