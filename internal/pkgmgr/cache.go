// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"
	"log/slog"
	"strings"

	"github.com/invowk/npx/internal/runtime"
)

// ResolveCache returns the package manager's shared cache directory: the
// explicit cache when one was configured, otherwise the trimmed output of
// "config get cache". Process failures are returned unchanged.
func (c *Client) ResolveCache(ctx context.Context, env runtime.Env) (string, error) {
	if c.cache != "" {
		return c.cache, nil
	}

	npmPath, err := c.resolve(env)
	if err != nil {
		return "", err
	}

	args := []string{"config", "get", "cache"}
	if c.userconfig != "" {
		args = append(args, "--userconfig", c.userconfig)
	}

	out, err := c.exec(ctx, runtime.Process{Path: npmPath, Args: args, Env: env, Dir: c.dir})
	if err != nil {
		return "", err
	}
	cache := strings.TrimSpace(out)
	slog.Debug("resolved package cache", "cache", cache)
	return cache, nil
}
