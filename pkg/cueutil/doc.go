// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration documents against embedded CUE
// schemas and turns CUE errors into file-prefixed messages with JSON-style
// field paths (for example "config.cue: call.shell: conflicting values").
package cueutil
