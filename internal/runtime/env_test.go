// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"slices"
	"testing"
)

func TestEnvFromEnviron(t *testing.T) {
	t.Parallel()

	env := EnvFromEnviron([]string{
		"FOO=bar",
		"EMPTY=",
		"URL=https://example.com?a=b",
		"=C:=C:\\work",
		"NOSEPARATOR",
		"FOO=override",
	})

	want := map[string]string{
		"FOO":   "override",
		"EMPTY": "",
		"URL":   "https://example.com?a=b",
		"=C:":   "C:\\work",
	}
	if len(env) != len(want) {
		t.Fatalf("len(env) = %d, want %d (%v)", len(env), len(want), env)
	}
	for k, v := range want {
		if got, ok := env[k]; !ok || got != v {
			t.Errorf("env[%q] = %q (present=%v), want %q", k, got, ok, v)
		}
	}
}

func TestEnv_EnvironSorted(t *testing.T) {
	t.Parallel()

	env := Env{"B": "2", "A": "1", "C": "3"}
	got := env.Environ()
	want := []string{"A=1", "B=2", "C=3"}
	if !slices.Equal(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestEnv_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := Env{"A": "1"}
	clone := orig.Clone()
	clone["A"] = "2"
	clone["B"] = "3"

	if orig["A"] != "1" {
		t.Errorf("original mutated: A = %q", orig["A"])
	}
	if _, ok := orig["B"]; ok {
		t.Error("original gained key B")
	}

	var nilEnv Env
	if got := nilEnv.Clone(); got == nil {
		t.Error("Clone() of nil Env should return a usable map")
	}
}

func TestEnv_WithPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     Env
		goos    string
		wantKey string
	}{
		{
			name:    "unix PATH replaced",
			env:     Env{"PATH": "/usr/bin"},
			goos:    "linux",
			wantKey: "PATH",
		},
		{
			name:    "missing PATH added",
			env:     Env{"HOME": "/home/u"},
			goos:    "linux",
			wantKey: "PATH",
		},
		{
			name:    "windows keeps Path spelling",
			env:     Env{"Path": `C:\Windows`},
			goos:    "windows",
			wantKey: "Path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := tt.env.withPathFor("/new", tt.goos)
			if got := out[tt.wantKey]; got != "/new" {
				t.Errorf("out[%q] = %q, want %q", tt.wantKey, got, "/new")
			}
			if _, changed := tt.env[tt.wantKey]; changed && tt.env[tt.wantKey] == "/new" {
				t.Error("receiver was mutated")
			}
		})
	}
}

func TestEnv_PathPrefersUppercase(t *testing.T) {
	t.Parallel()

	env := Env{"PATH": "/usr/bin"}
	if got := env.Path(); got != "/usr/bin" {
		t.Errorf("Path() = %q, want %q", got, "/usr/bin")
	}
	if got := (Env{}).Path(); got != "" {
		t.Errorf("Path() of empty env = %q, want empty", got)
	}
}

func TestPrependPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		goos string
		dirs []string
		want string
	}{
		{
			name: "local then ephemeral then original",
			path: "/usr/bin:/bin",
			goos: "linux",
			dirs: []string{"/proj/node_modules/.bin", "/cache/_npx/bin"},
			want: "/proj/node_modules/.bin:/cache/_npx/bin:/usr/bin:/bin",
		},
		{
			name: "empty dirs skipped",
			path: "/usr/bin",
			goos: "linux",
			dirs: []string{"", "/proj/node_modules/.bin"},
			want: "/proj/node_modules/.bin:/usr/bin",
		},
		{
			name: "empty original path",
			path: "",
			goos: "darwin",
			dirs: []string{"/a"},
			want: "/a",
		},
		{
			name: "windows separator",
			path: `C:\Windows`,
			goos: "windows",
			dirs: []string{`C:\proj\node_modules\.bin`},
			want: `C:\proj\node_modules\.bin;C:\Windows`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := prependPathFor(tt.path, tt.goos, tt.dirs...); got != tt.want {
				t.Errorf("prependPathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
