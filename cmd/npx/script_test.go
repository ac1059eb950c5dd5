// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets scripts run the npx binary as an in-process command.
func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"npx": Execute,
	})
}

func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			// Keep scripts hermetic: no registry traffic, no user config.
			env.Setenv("NPX_UPDATE_CHECK_ENABLED", "false")
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}
