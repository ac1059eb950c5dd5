// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/npx/internal/runtime"
	"github.com/invowk/npx/internal/testutil"
)

func TestClient_ResolveCache_ExplicitSkipsPackageManager(t *testing.T) {
	t.Parallel()

	client := NewClient("definitely-not-npm", WithCache("/explicit/cache"))
	client.exec = func(context.Context, runtime.Process) (string, error) {
		t.Error("package manager must not be invoked when a cache is given")
		return "", nil
	}

	got, err := client.ResolveCache(context.Background(), runtime.Env{})
	if err != nil {
		t.Fatalf("ResolveCache() error = %v", err)
	}
	if got != "/explicit/cache" {
		t.Errorf("ResolveCache() = %q, want %q", got, "/explicit/cache")
	}
}

func TestClient_ResolveCache_QueriesPackageManager(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	testutil.WriteScript(t, dir, "npm", `printf '%s\n' "$@" > "$ARGS_FILE"
echo "  /home/user/.npm  "`)

	client := NewClient("npm", WithUserconfig("/home/user/.npmrc"), WithDir(dir))
	env := runtime.Env{"PATH": dir, "ARGS_FILE": argsFile}

	got, err := client.ResolveCache(context.Background(), env)
	if err != nil {
		t.Fatalf("ResolveCache() error = %v", err)
	}
	if got != "/home/user/.npm" {
		t.Errorf("ResolveCache() = %q, want trimmed path", got)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	if want := "config get cache --userconfig /home/user/.npmrc"; strings.Join(strings.Fields(string(data)), " ") != want {
		t.Errorf("args = %q, want %q", strings.Fields(string(data)), want)
	}
}

func TestClient_ResolveCache_ProcessFailurePropagates(t *testing.T) {
	t.Parallel()

	npm := testutil.WriteScript(t, t.TempDir(), "npm", "echo 'bad config' >&2\nexit 2")

	_, err := NewClient(npm).ResolveCache(context.Background(), runtime.Env{})
	var procErr *runtime.ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("ResolveCache() error = %v, want *runtime.ProcessError", err)
	}
	if procErr.Code != 2 {
		t.Errorf("Code = %d, want 2", procErr.Code)
	}
	if !strings.Contains(procErr.Stderr, "bad config") {
		t.Errorf("Stderr = %q", procErr.Stderr)
	}
}

func TestClient_ResolveCache_PackageManagerMissing(t *testing.T) {
	t.Parallel()

	client := NewClient("definitely-not-npm-xyz", WithDir(t.TempDir()))
	_, err := client.ResolveCache(context.Background(), runtime.Env{"PATH": t.TempDir()})
	if !errors.Is(err, runtime.ErrCommandNotFound) {
		t.Errorf("ResolveCache() error = %v, want ErrCommandNotFound", err)
	}
}
