// SPDX-License-Identifier: MPL-2.0

package fallback

import (
	"errors"
	"strings"
	"testing"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		shell    string
		envShell string
		contains string
		absent   string
		wantErr  bool
	}{
		{
			name:     "detected from SHELL",
			envShell: "/bin/bash",
			contains: "command_not_found_handle()",
		},
		{
			name:     "explicit zsh overrides SHELL",
			shell:    "zsh",
			envShell: "/bin/bash",
			contains: "command_not_found_handler()",
		},
		{
			name:     "fish by path",
			shell:    "/usr/local/bin/fish",
			contains: "--on-event fish_command_not_found",
			absent:   "command_not_found_handle()",
		},
		{
			name:     "unsupported explicit falls back to SHELL",
			shell:    "tcsh",
			envShell: "/usr/bin/zsh",
			contains: "command_not_found_handler()",
		},
		{
			name:     "nothing supported",
			shell:    "tcsh",
			envShell: "/bin/ksh",
			wantErr:  true,
		},
		{
			name:    "nothing at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Snippet(tt.shell, tt.envShell)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedShell) {
					t.Errorf("Snippet() error = %v, want ErrUnsupportedShell", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Snippet() error = %v", err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Snippet() missing %q:\n%s", tt.contains, got)
			}
			if tt.absent != "" && strings.Contains(got, tt.absent) {
				t.Errorf("Snippet() unexpectedly contains %q", tt.absent)
			}
		})
	}
}

func TestRender_PosixSnippetsUseNoInstallForBareNames(t *testing.T) {
	t.Parallel()

	for _, s := range []Shell{Bash, Zsh} {
		got, err := Render(s)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", s, err)
		}
		if !strings.Contains(got, `npx --no-install "$@"`) {
			t.Errorf("Render(%s) lacks --no-install branch", s)
		}
		if !strings.Contains(got, "return 127") {
			t.Errorf("Render(%s) lacks not-found return", s)
		}
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Shell
		ok   bool
	}{
		{"bash", Bash, true},
		{"/bin/BASH", Bash, true},
		{"/opt/homebrew/bin/zsh", Zsh, true},
		{"fish", Fish, true},
		{"/bin/sh", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Detect(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Detect(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
