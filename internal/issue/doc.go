// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown guides
// for the failures users hit most often, rendered with glamour in verbose mode.
package issue
