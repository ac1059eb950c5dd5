// SPDX-License-Identifier: MPL-2.0

package updatecheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/mod/semver"
)

const (
	// PackageName is the registry package npx is published as.
	PackageName = "npx"
	// DefaultInterval is the minimum time between registry queries.
	DefaultInterval = 24 * time.Hour
)

// ErrInvalidVersion indicates a version string is not valid semver.
var ErrInvalidVersion = errors.New("invalid version")

type (
	// LatestVersionFetcher looks up the latest published version of a package.
	LatestVersionFetcher interface {
		LatestVersion(ctx context.Context, name string) (string, error)
	}

	// Checker decides whether an update notice is due.
	Checker struct {
		fetcher   LatestVersionFetcher
		fs        afero.Fs
		statePath string
		interval  time.Duration
		pkg       string
		now       func() time.Time
	}

	// CheckerOption configures a Checker.
	CheckerOption func(*Checker)

	// Notice describes an available update.
	Notice struct {
		Current string
		Latest  string
	}
)

// WithFs sets the filesystem the state file lives on.
func WithFs(fsys afero.Fs) CheckerOption {
	return func(c *Checker) { c.fs = fsys }
}

// WithInterval sets the minimum time between registry queries.
func WithInterval(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithPackage overrides the package name looked up in the registry.
func WithPackage(name string) CheckerOption {
	return func(c *Checker) { c.pkg = name }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a Checker recording its state at statePath.
func NewChecker(fetcher LatestVersionFetcher, statePath string, opts ...CheckerOption) *Checker {
	c := &Checker{
		fetcher:   fetcher,
		fs:        afero.NewOsFs(),
		statePath: statePath,
		interval:  DefaultInterval,
		pkg:       PackageName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// String returns the one-line notice shown to the user.
func (n *Notice) String() string {
	return fmt.Sprintf("Update available %s → %s. Run `npm install -g %s` to update.",
		strings.TrimPrefix(n.Current, "v"), strings.TrimPrefix(n.Latest, "v"), PackageName)
}

// Check returns a Notice when a version newer than current is published, and
// nil otherwise. Development builds and invalid versions are never checked.
// The registry is queried only when the cached result is older than the
// interval.
func (c *Checker) Check(ctx context.Context, current string) (*Notice, error) {
	currentNorm, err := normalizeVersion(current)
	if err != nil {
		slog.Debug("skipping update check", "version", current, "error", err)
		return nil, nil //nolint:nilerr // Development builds have no comparable version.
	}

	st, err := loadState(c.fs, c.statePath)
	if err != nil {
		slog.Debug("discarding unreadable update state", "error", err)
		st = state{}
	}

	now := c.now()
	if now.Sub(st.LastCheck) >= c.interval {
		latest, fetchErr := c.fetcher.LatestVersion(ctx, c.pkg)
		if fetchErr == nil {
			st.Latest = latest
		}
		st.LastCheck = now
		if err := saveState(c.fs, c.statePath, st); err != nil {
			slog.Debug("failed to persist update state", "error", err)
		}
		if fetchErr != nil {
			return nil, fetchErr
		}
	}
	if st.Latest == "" {
		return nil, nil
	}

	latestNorm, err := normalizeVersion(st.Latest)
	if err != nil {
		return nil, err
	}
	if semver.Prerelease(latestNorm) != "" || semver.Compare(currentNorm, latestNorm) >= 0 {
		return nil, nil
	}
	return &Notice{Current: currentNorm, Latest: latestNorm}, nil
}

// normalizeVersion ensures the version string has a "v" prefix as required by
// the semver package, and validates that the result is a well-formed semantic
// version.
func normalizeVersion(v string) (string, error) {
	norm := v
	if !strings.HasPrefix(norm, "v") {
		norm = "v" + norm
	}
	if !semver.IsValid(norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return norm, nil
}
