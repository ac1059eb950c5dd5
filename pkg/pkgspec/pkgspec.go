// SPDX-License-Identifier: MPL-2.0

package pkgspec

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	// TypeRegistry is a registry package, optionally with a version, range or tag.
	TypeRegistry Type = "registry"
	// TypeGit is a git URL or a hosted-git shorthand (user/repo, github:user/repo).
	TypeGit Type = "git"
	// TypeRemote is a tarball fetched over http(s).
	TypeRemote Type = "remote"
	// TypeFile is a local tarball.
	TypeFile Type = "file"
	// TypeDirectory is a local package directory.
	TypeDirectory Type = "directory"
)

var (
	// ErrEmptySpecifier is returned when parsing an empty or whitespace-only specifier.
	ErrEmptySpecifier = errors.New("empty package specifier")
	// ErrNoCommandName is the sentinel error wrapped by NoCommandNameError.
	ErrNoCommandName = errors.New("unable to guess a binary name")

	gitTailPattern     = regexp.MustCompile(`(?i)([a-z0-9._-]+?)(?:\.git)?/?$`)
	versionTailPattern = regexp.MustCompile(`(?i)-\d+\.\d+\.\d+(?:-[a-z0-9.+-]+)?$`)
	hostedPrefixes     = []string{"github:", "gitlab:", "bitbucket:", "gist:"}
	gitPrefixes        = []string{"git+", "git://", "git@"}
)

type (
	// Type classifies a specifier by where the package comes from.
	Type string

	// Spec is a parsed package specifier.
	Spec struct {
		// Raw is the specifier exactly as given.
		Raw string
		// Type classifies the source.
		Type Type
		// Name is the package name. Empty for specifiers that do not name a
		// registry package (git, remote, file, directory).
		Name string
		// Scope is the "@scope" part of a scoped registry name, if any.
		Scope string
		// Version is the version, range or tag after '@'. Empty when absent.
		Version string
		// Project is the repository name for hosted-git shorthands.
		Project string
	}

	// NoCommandNameError is returned when no executable name can be derived
	// from a specifier.
	NoCommandNameError struct {
		Raw string
	}
)

// Error implements the error interface.
func (e *NoCommandNameError) Error() string {
	return fmt.Sprintf("unable to guess a binary name from %s, please use --package", e.Raw)
}

// Unwrap returns ErrNoCommandName for errors.Is() compatibility.
func (e *NoCommandNameError) Unwrap() error { return ErrNoCommandName }

// Parse classifies raw and splits registry specifiers into name and version.
func Parse(raw string) (Spec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Spec{}, ErrEmptySpecifier
	}

	spec := Spec{Raw: trimmed}

	switch {
	case hasAnyPrefix(trimmed, gitPrefixes):
		spec.Type = TypeGit
	case hasAnyPrefix(trimmed, hostedPrefixes):
		spec.Type = TypeGit
		_, rest, _ := strings.Cut(trimmed, ":")
		spec.Project = hostedProject(rest)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		spec.Type = TypeRemote
	case strings.HasPrefix(trimmed, "file:"):
		spec.Type = classifyLocal(strings.TrimPrefix(trimmed, "file:"))
	case isLocalPath(trimmed):
		spec.Type = classifyLocal(trimmed)
	case isHostedShorthand(trimmed):
		spec.Type = TypeGit
		spec.Project = hostedProject(trimmed)
	default:
		spec.Type = TypeRegistry
		spec.Name, spec.Version = splitNameVersion(trimmed)
		if strings.HasPrefix(spec.Name, "@") {
			spec.Scope, _, _ = strings.Cut(spec.Name, "/")
		}
	}

	return spec, nil
}

// HasVersion reports whether the specifier pins anything beyond a bare
// registry name. Non-registry specifiers always count as pinned.
func (s Spec) HasVersion() bool {
	return s.Name != s.Raw
}

// CommandName guesses the executable a specifier provides: the unscoped
// package name for registry specs, the repository name for git specs, and
// the file name without extension or version suffix for tarballs.
func (s Spec) CommandName() (string, error) {
	switch s.Type {
	case TypeRegistry:
		if s.Scope != "" {
			return strings.TrimPrefix(s.Name, s.Scope+"/"), nil
		}
		return s.Name, nil
	case TypeGit:
		if s.Project != "" {
			return s.Project, nil
		}
		if m := gitTailPattern.FindStringSubmatch(stripFragment(s.Raw)); m != nil {
			return m[1], nil
		}
	case TypeDirectory:
		return s.Raw, nil
	case TypeFile, TypeRemote:
		base := path.Base(stripFragment(strings.TrimPrefix(s.Raw, "file:")))
		ext := path.Ext(base)
		if ext == ".gz" {
			ext = path.Ext(strings.TrimSuffix(base, ext)) + ext
		}
		name := versionTailPattern.ReplaceAllString(strings.TrimSuffix(base, ext), "")
		if name != "" {
			return name, nil
		}
	}
	return "", &NoCommandNameError{Raw: s.Raw}
}

// splitNameVersion splits "name@version" and "@scope/name@version".
func splitNameVersion(raw string) (name, version string) {
	searchFrom := 0
	if strings.HasPrefix(raw, "@") {
		searchFrom = 1
	}
	idx := strings.Index(raw[searchFrom:], "@")
	if idx == -1 {
		return raw, ""
	}
	idx += searchFrom
	return raw[:idx], raw[idx+1:]
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isLocalPath(s string) bool {
	return strings.HasPrefix(s, ".") || strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "~") || strings.HasPrefix(s, `\`) ||
		(len(s) > 1 && s[1] == ':')
}

func classifyLocal(p string) Type {
	if strings.HasSuffix(p, ".tgz") || strings.HasSuffix(p, ".tar.gz") || strings.HasSuffix(p, ".tar") {
		return TypeFile
	}
	return TypeDirectory
}

// isHostedShorthand matches "user/repo" (with an optional #committish),
// which the package manager resolves against the default git host.
func isHostedShorthand(s string) bool {
	if strings.HasPrefix(s, "@") {
		return false
	}
	repo := stripFragment(s)
	user, project, found := strings.Cut(repo, "/")
	return found && user != "" && project != "" && !strings.ContainsAny(project, "/@:")
}

func hostedProject(s string) string {
	repo := stripFragment(s)
	if _, project, found := strings.Cut(repo, "/"); found {
		return strings.TrimSuffix(project, ".git")
	}
	return ""
}

func stripFragment(s string) string {
	before, _, _ := strings.Cut(s, "#")
	return before
}
