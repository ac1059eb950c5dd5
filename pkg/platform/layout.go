// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

const (
	// NodeModulesDir is the directory packages are installed into inside a project.
	NodeModulesDir = "node_modules"
	// LocalBinDir is the directory, inside NodeModulesDir, holding project-local executables.
	LocalBinDir = ".bin"
	// GlobalBinDir is the subdirectory of a global prefix holding executables on
	// platforms other than Windows.
	GlobalBinDir = "bin"
)

// PrefixBinDir returns the directory under a global installation prefix
// where executables are linked. Windows places them directly in the prefix.
func PrefixBinDir(prefix, goos string) string {
	if goos == Windows {
		return prefix
	}
	return filepath.Join(prefix, GlobalBinDir)
}

// ProjectBinDir returns the project-local binary directory for a project prefix.
func ProjectBinDir(prefix string) string {
	return filepath.Join(prefix, NodeModulesDir, LocalBinDir)
}

// PathListSeparator returns the PATH list separator for goos.
func PathListSeparator(goos string) string {
	if goos == Windows {
		return ";"
	}
	return ":"
}

// IsPathKey reports whether an environment variable name denotes the
// executable search path on goos. Windows variable names are case-insensitive.
func IsPathKey(name, goos string) bool {
	if goos == Windows {
		return strings.EqualFold(name, "PATH")
	}
	return name == "PATH"
}
