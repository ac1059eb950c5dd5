// SPDX-License-Identifier: MPL-2.0

package pkgspec

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw         string
		wantType    Type
		wantName    string
		wantVersion string
		wantHas     bool
		wantCommand string
	}{
		{raw: "cowsay", wantType: TypeRegistry, wantName: "cowsay", wantCommand: "cowsay"},
		{raw: "cowsay@1.5.0", wantType: TypeRegistry, wantName: "cowsay", wantVersion: "1.5.0", wantHas: true, wantCommand: "cowsay"},
		{raw: "foo@latest", wantType: TypeRegistry, wantName: "foo", wantVersion: "latest", wantHas: true, wantCommand: "foo"},
		{raw: "@angular/cli", wantType: TypeRegistry, wantName: "@angular/cli", wantCommand: "cli"},
		{raw: "@angular/cli@^17", wantType: TypeRegistry, wantName: "@angular/cli", wantVersion: "^17", wantHas: true, wantCommand: "cli"},
		{raw: "zkat/cowsay", wantType: TypeGit, wantHas: true, wantCommand: "cowsay"},
		{raw: "github:zkat/cowsay#main", wantType: TypeGit, wantHas: true, wantCommand: "cowsay"},
		{raw: "git+https://example.com/org/my-tool.git", wantType: TypeGit, wantHas: true, wantCommand: "my-tool"},
		{raw: "https://example.com/pkg/tool-1.2.3.tgz", wantType: TypeRemote, wantHas: true, wantCommand: "tool"},
		{raw: "./pkg/tool-2.0.0.tar.gz", wantType: TypeFile, wantHas: true, wantCommand: "tool"},
		{raw: "./my-dir", wantType: TypeDirectory, wantHas: true, wantCommand: "./my-dir"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			spec, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.raw, err)
			}
			if spec.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", spec.Type, tt.wantType)
			}
			if spec.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", spec.Name, tt.wantName)
			}
			if spec.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", spec.Version, tt.wantVersion)
			}
			if spec.HasVersion() != tt.wantHas {
				t.Errorf("HasVersion() = %v, want %v", spec.HasVersion(), tt.wantHas)
			}
			cmd, err := spec.CommandName()
			if err != nil {
				t.Fatalf("CommandName() unexpected error: %v", err)
			}
			if cmd != tt.wantCommand {
				t.Errorf("CommandName() = %q, want %q", cmd, tt.wantCommand)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	if _, err := Parse("   "); !errors.Is(err, ErrEmptySpecifier) {
		t.Errorf("Parse(blank) error = %v, want ErrEmptySpecifier", err)
	}
}

func TestCommandName_Unguessable(t *testing.T) {
	t.Parallel()

	spec := Spec{Raw: "https://example.com/.tgz", Type: TypeRemote}
	_, err := spec.CommandName()
	if !errors.Is(err, ErrNoCommandName) {
		t.Fatalf("CommandName() error = %v, want ErrNoCommandName", err)
	}
	var nameErr *NoCommandNameError
	if !errors.As(err, &nameErr) || nameErr.Raw != spec.Raw {
		t.Errorf("expected NoCommandNameError carrying raw spec, got %v", err)
	}
}
