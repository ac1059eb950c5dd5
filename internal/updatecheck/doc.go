// SPDX-License-Identifier: MPL-2.0

// Package updatecheck tells the user when a newer npx release is published.
//
// The registry is queried at most once per interval; the result is cached in a
// small JSON state file so runs in between compare against the cached version
// without touching the network. Failures never reach the caller's exit status.
package updatecheck
