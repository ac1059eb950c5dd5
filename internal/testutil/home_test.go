// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}

	tmpDir := t.TempDir()
	originalHome, hadHome := os.LookupEnv(key)

	cleanup := SetHomeDir(t, tmpDir)

	if got := os.Getenv(key); got != tmpDir {
		t.Errorf("%s = %q, want %q", key, got, tmpDir)
	}
	if got := os.Getenv("XDG_CONFIG_HOME"); got != "" {
		t.Errorf("XDG_CONFIG_HOME = %q, want empty", got)
	}

	cleanup()

	got, ok := os.LookupEnv(key)
	if ok != hadHome || got != originalHome {
		t.Errorf("after cleanup, %s = %q (set=%v), want %q (set=%v)", key, got, ok, originalHome, hadHome)
	}
}
