// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/npx/internal/testutil"
)

func TestLookPath_UsesEnvPath(t *testing.T) {
	t.Parallel()

	binDir := t.TempDir()
	want := testutil.WriteScript(t, binDir, "cowsay", "echo moo")

	env := Env{"PATH": binDir}
	got, err := LookPath("cowsay", env, t.TempDir())
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if got != want {
		t.Errorf("LookPath() = %q, want %q", got, want)
	}
}

func TestLookPath_FirstPathEntryWins(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	want := testutil.WriteScript(t, first, "tool", "echo first")
	testutil.WriteScript(t, second, "tool", "echo second")

	got, err := LookPath("tool", Env{"PATH": PrependPath(second, first)}, "")
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if got != want {
		t.Errorf("LookPath() = %q, want %q", got, want)
	}
}

func TestLookPath_RelativeToDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteScript(t, filepath.Join(dir, "scripts"), "run", "true")

	got, err := LookPath("./scripts/run", Env{}, dir)
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if filepath.Base(got) != "run" {
		t.Errorf("LookPath() = %q, want path ending in run", got)
	}
}

func TestLookPath_NotFound(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "definitely-not-a-real-command-xyz"} {
		_, err := LookPath(name, Env{"PATH": t.TempDir()}, "")
		if !errors.Is(err, ErrCommandNotFound) {
			t.Errorf("LookPath(%q) error = %v, want ErrCommandNotFound", name, err)
		}
		var notFound *CommandNotFoundError
		if !errors.As(err, &notFound) || notFound.Name != name {
			t.Errorf("LookPath(%q) error = %#v, want *CommandNotFoundError with Name", name, err)
		}
	}
}
