// SPDX-License-Identifier: MPL-2.0

package prefix

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/invowk/npx/pkg/platform"

	"github.com/spf13/afero"
)

// PackageJSON is the project manifest file name.
const PackageJSON = "package.json"

// Resolver discovers install prefixes on a filesystem.
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a Resolver backed by fs. A nil fs uses the OS filesystem.
func NewResolver(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs}
}

// Prefix returns the install prefix for cwd.
func (r *Resolver) Prefix(cwd string) (string, error) {
	original, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	root := original
	for filepath.Base(root) == platform.NodeModulesDir {
		root = filepath.Dir(root)
	}
	if root != original {
		return root, nil
	}

	found, err := r.fromTree(root)
	if err != nil {
		return "", err
	}
	if found == "" {
		slog.Debug("no project root found, using working directory", "cwd", original)
		return original, nil
	}
	return found, nil
}

// LocalBinDir returns <prefix>/node_modules/.bin for cwd.
func (r *Resolver) LocalBinDir(cwd string) (string, error) {
	prefix, err := r.Prefix(cwd)
	if err != nil {
		return "", err
	}
	return platform.ProjectBinDir(prefix), nil
}

// fromTree walks from start towards the filesystem root and returns the first
// directory holding a manifest or a node_modules directory. The filesystem
// root itself never qualifies.
func (r *Resolver) fromTree(start string) (string, error) {
	cur := start
	for {
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", nil
		}

		for _, marker := range []string{PackageJSON, platform.NodeModulesDir} {
			markerPath := filepath.Join(cur, marker)
			ok, err := afero.Exists(r.fs, markerPath)
			if err != nil {
				return "", fmt.Errorf("stat %s: %w", markerPath, err)
			}
			if ok {
				return cur, nil
			}
		}
		cur = parent
	}
}
