// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/invowk/npx/internal/config"
	"github.com/invowk/npx/internal/updatecheck"
)

// updateCheckTimeout bounds the registry query so a slow network never
// delays the exit of a short-lived command by much.
const updateCheckTimeout = 3 * time.Second

// UpdateChecker reports whether a newer release is available.
type UpdateChecker interface {
	Check(ctx context.Context, current string) (*updatecheck.Notice, error)
}

// newUpdateChecker builds the registry-backed checker from configuration.
func newUpdateChecker(cfg *config.Config) (UpdateChecker, error) {
	interval, err := cfg.UpdateCheck.IntervalDuration()
	if err != nil {
		return nil, err
	}
	statePath, err := config.StatePath(updatecheck.StateFileName)
	if err != nil {
		return nil, err
	}
	client := updatecheck.NewRegistryClient(
		updatecheck.WithBaseURL(cfg.UpdateCheck.Registry),
		updatecheck.WithUserAgent("npx/"+Version),
	)
	return updatecheck.NewChecker(client, statePath, updatecheck.WithInterval(interval)), nil
}

// startUpdateCheck runs checker in the background. The returned channel
// yields at most one notice and is closed when the check finishes.
func startUpdateCheck(ctx context.Context, checker UpdateChecker, version string) <-chan *updatecheck.Notice {
	out := make(chan *updatecheck.Notice, 1)
	go func() {
		defer close(out)
		ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
		defer cancel()

		notice, err := checker.Check(ctx, version)
		if err != nil {
			slog.Debug("update check failed", "error", err)
			return
		}
		if notice != nil {
			out <- notice
		}
	}()
	return out
}

// collectNotice waits for the background check, giving up after grace.
func collectNotice(ch <-chan *updatecheck.Notice, grace time.Duration) *updatecheck.Notice {
	if ch == nil {
		return nil
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case n := <-ch:
		return n
	case <-timer.C:
		return nil
	}
}
