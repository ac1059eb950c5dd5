// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home directory variable at dir and
// returns a cleanup function restoring the original value.
//
// Platform handling:
//   - Windows: Sets USERPROFILE
//   - Linux/macOS: Sets HOME
//
// XDG_CONFIG_HOME is cleared as well so config lookups fall back to dir.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	restoreXDG := MustSetenv(t, "XDG_CONFIG_HOME", "")
	var restoreHome func()
	switch runtime.GOOS {
	case "windows":
		restoreHome = MustSetenv(t, "USERPROFILE", dir)
	default:
		restoreHome = MustSetenv(t, "HOME", dir)
	}
	return func() {
		restoreHome()
		restoreXDG()
	}
}
