// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory in tests.
// os.UserHomeDir() ignores HOME on some platforms, so tests cannot rely on it.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride points ConfigDir at dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
