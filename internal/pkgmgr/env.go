// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"

	"github.com/invowk/npx/internal/runtime"
)

// RunEnv returns the environment package scripts run with, as reported by
// "run env". The returned Env replaces the caller's environment wholesale.
func (c *Client) RunEnv(ctx context.Context, env runtime.Env) (runtime.Env, error) {
	npmPath, err := c.resolve(env)
	if err != nil {
		return nil, err
	}

	out, err := c.exec(ctx, runtime.Process{Path: npmPath, Args: []string{"run", "env"}, Env: env, Dir: c.dir})
	if err != nil {
		return nil, err
	}
	return runtime.ParseDotenv([]byte(out)), nil
}
