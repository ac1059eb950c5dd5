// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/invowk/npx/internal/issue"
	"github.com/invowk/npx/internal/testutil"
)

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_HomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("home fallback layout differs off Linux")
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}

	statePath, err := StatePath("update-check.json")
	if err != nil {
		t.Fatalf("StatePath() returned error: %v", err)
	}
	if want := filepath.Join(dir, "update-check.json"); statePath != want {
		t.Errorf("StatePath() = %q, want %q", statePath, want)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if loaded.Path != "" {
		t.Errorf("Path = %q, want empty", loaded.Path)
	}
	if *loaded.Config != *DefaultConfig() {
		t.Errorf("Config = %+v, want defaults %+v", *loaded.Config, *DefaultConfig())
	}
}

func TestLoad_CUEFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	testutil.MustWriteFile(t, path, `
npm: "pnpm"
cache: "/var/cache/npm"
install: lock: false
call: shell: "virtual"
update_check: {
	enabled: false
	interval: "12h"
}
ui: color_scheme: "dark"
`, 0o644)

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	cfg := loaded.Config

	if loaded.Path != path {
		t.Errorf("Path = %q, want %q", loaded.Path, path)
	}
	if cfg.NPM != "pnpm" {
		t.Errorf("NPM = %q, want pnpm", cfg.NPM)
	}
	if cfg.Cache != "/var/cache/npm" {
		t.Errorf("Cache = %q", cfg.Cache)
	}
	if cfg.Install.Lock {
		t.Error("expected install lock to be disabled")
	}
	if cfg.Call.Shell != CallShellVirtual {
		t.Errorf("Call.Shell = %q, want virtual", cfg.Call.Shell)
	}
	if cfg.UpdateCheck.Enabled || cfg.UpdateCheck.Interval != "12h" {
		t.Errorf("UpdateCheck = %+v", cfg.UpdateCheck)
	}
	// Unset fields keep their defaults.
	if cfg.UpdateCheck.Registry != DefaultRegistry {
		t.Errorf("Registry = %q, want default", cfg.UpdateCheck.Registry)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	testutil.MustWriteFile(t, path, `
npm = "yarn"
userconfig = "/home/me/.npmrc"

[ui]
verbose = true
`, 0o644)

	loaded, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if loaded.Path != path {
		t.Errorf("Path = %q, want %q", loaded.Path, path)
	}
	if loaded.Config.NPM != "yarn" || loaded.Config.Userconfig != "/home/me/.npmrc" {
		t.Errorf("Config = %+v", *loaded.Config)
	}
	if !loaded.Config.UI.Verbose {
		t.Error("expected verbose to be enabled")
	}
}

func TestLoad_CUETakesPrecedenceOverTOML(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `npm: "from-cue"`, 0o644)
	testutil.MustWriteFile(t, filepath.Join(dir, "config.toml"), `npm = "from-toml"`, 0o644)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.NPM != "from-cue" {
		t.Errorf("NPM = %q, want from-cue", cfg.NPM)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown field cue", "config.cue", `npmm: "pnpm"`},
		{"bad shell cue", "config.cue", `call: shell: "bash"`},
		{"bad interval cue", "config.cue", `update_check: interval: "daily"`},
		{"syntax error cue", "config.cue", `npm: `},
		{"unknown field toml", "config.toml", `colour = "red"`},
		{"bad scheme toml", "config.toml", "[ui]\ncolor_scheme = \"neon\""},
		{"syntax error toml", "config.toml", `npm = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(dir, tt.file), tt.content, 0o644)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Operation != "load configuration" {
				t.Errorf("Operation = %q", ae.Operation)
			}
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	testutil.MustWriteFile(t, path, `cache = "/tmp/c"`, 0o644)

	loaded, err := LoadWithSource(context.Background(), LoadOptions{
		ConfigFilePath: path,
		ConfigDirPath:  filepath.Join(dir, "ignored"),
	})
	if err != nil {
		t.Fatalf("LoadWithSource() returned error: %v", err)
	}
	if loaded.Path != path || loaded.Config.Cache != "/tmp/c" {
		t.Errorf("got %+v / %+v", loaded.Path, *loaded.Config)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `npm: "pnpm"`, 0o644)

	t.Setenv("NPX_NPM", "bun")
	t.Setenv("NPX_INSTALL_LOCK", "false")
	t.Setenv("NPX_CALL_SHELL", "virtual")
	t.Setenv("NPX_UPDATE_CHECK_ENABLED", "false")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.NPM != "bun" {
		t.Errorf("NPM = %q, want bun (env beats file)", cfg.NPM)
	}
	if cfg.Install.Lock {
		t.Error("expected NPX_INSTALL_LOCK=false to disable the lock")
	}
	if cfg.Call.Shell != CallShellVirtual {
		t.Errorf("Call.Shell = %q, want virtual", cfg.Call.Shell)
	}
	if cfg.UpdateCheck.Enabled {
		t.Error("expected update check disabled")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("NPX_CALL_SHELL", "powershell")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected errors.Is(err, ErrInvalidConfig), got %v", err)
	}
	if !errors.Is(err, ErrInvalidCallShell) {
		t.Errorf("expected ErrInvalidCallShell in chain, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_OversizedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	big := "# " + strings.Repeat("x", 6*1024*1024) + "\n"
	if err := os.WriteFile(path, []byte(big), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("expected size limit error")
	}
}
