// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	goruntime "runtime"
	"slices"
	"strings"

	"github.com/invowk/npx/pkg/platform"
)

// Env is an environment block keyed by variable name.
type Env map[string]string

// EnvFromEnviron converts "KEY=VALUE" entries (as returned by os.Environ) to an Env.
// Entries without a separator are dropped. Later duplicates win.
func EnvFromEnviron(environ []string) Env {
	env := make(Env, len(environ))
	for _, entry := range environ {
		idx := findEnvSeparator(entry)
		if idx == -1 {
			continue
		}
		env[entry[:idx]] = entry[idx+1:]
	}
	return env
}

// Clone returns a copy of the environment that can be mutated independently.
func (e Env) Clone() Env {
	if e == nil {
		return Env{}
	}
	return maps.Clone(e)
}

// Environ returns the environment as sorted "KEY=VALUE" entries.
func (e Env) Environ() []string {
	result := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		result = append(result, k+"="+e[k])
	}
	return result
}

// Path returns the executable search path of the environment.
func (e Env) Path() string {
	_, value, _ := e.lookupPath(goruntime.GOOS)
	return value
}

// WithPath returns a copy of the environment with the search path set to value.
// An existing PATH variable keeps its spelling (Windows uses "Path").
func (e Env) WithPath(value string) Env {
	return e.withPathFor(value, goruntime.GOOS)
}

func (e Env) withPathFor(value, goos string) Env {
	out := e.Clone()
	key, _, ok := e.lookupPath(goos)
	if !ok {
		key = "PATH"
	}
	out[key] = value
	return out
}

func (e Env) lookupPath(goos string) (key, value string, ok bool) {
	if v, found := e["PATH"]; found {
		return "PATH", v, true
	}
	for k, v := range e {
		if platform.IsPathKey(k, goos) {
			return k, v, true
		}
	}
	return "", "", false
}

// PrependPath returns path with dirs placed in front, in the given order.
// Empty dirs are skipped, and an empty path yields only the dirs.
func PrependPath(path string, dirs ...string) string {
	return prependPathFor(path, goruntime.GOOS, dirs...)
}

func prependPathFor(path, goos string, dirs ...string) string {
	parts := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		if d != "" {
			parts = append(parts, d)
		}
	}
	if path != "" {
		parts = append(parts, path)
	}
	return strings.Join(parts, platform.PathListSeparator(goos))
}

// findEnvSeparator returns the index of the '=' separator in an environment variable string.
// A leading '=' belongs to the name (Windows per-drive variables such as "=C:").
func findEnvSeparator(e string) int {
	for i := 1; i < len(e); i++ {
		if e[i] == '=' {
			return i
		}
	}
	return -1
}
