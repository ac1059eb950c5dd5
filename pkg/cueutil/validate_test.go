// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name?:  string & =~"^[a-z]+$"
	level?: "low" | "high"
	inner?: {
		count?: int & >=0
	}
}
`

func TestCompileSchema(t *testing.T) {
	t.Parallel()

	if _, err := CompileSchema(testSchema, "#Doc"); err != nil {
		t.Fatalf("CompileSchema() returned error: %v", err)
	}
	if _, err := CompileSchema(testSchema, "#Missing"); err == nil {
		t.Error("expected error for missing definition")
	}
	if _, err := CompileSchema("#Doc: {", "#Doc"); err == nil {
		t.Error("expected error for invalid schema source")
	}
}

func TestSchema_ValidateSource(t *testing.T) {
	t.Parallel()

	schema, err := CompileSchema(testSchema, "#Doc")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "empty", src: ""},
		{name: "valid", src: `name: "abc", level: "high"`},
		{name: "bad enum", src: `level: "mid"`, wantErr: "level"},
		{name: "unknown field", src: `nope: 1`, wantErr: "nope"},
		{name: "nested", src: `inner: count: -1`, wantErr: "inner.count"},
		{name: "syntax", src: `name: `, wantErr: "doc.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := schema.ValidateSource([]byte(tt.src), "doc.cue")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSchema_ValidateValue(t *testing.T) {
	t.Parallel()

	schema, err := CompileSchema(testSchema, "#Doc")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := schema.ValidateValue(map[string]any{"name": "ok", "inner": map[string]any{"count": int64(2)}}, "doc.toml"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := schema.ValidateValue(map[string]any{"extra": true}, "doc.toml"); err == nil {
		t.Error("expected closedness error for unknown key")
	}
	if _, err := schema.ValidateValue(map[string]any{"name": "UPPER"}, "doc.toml"); err == nil {
		t.Error("expected pattern error")
	}
}
