// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"context"
	"io"
	"os"
	goruntime "runtime"

	"github.com/invowk/npx/internal/runtime"

	"github.com/spf13/afero"
)

// DefaultExecutable is the package manager used when none is configured.
const DefaultExecutable = "npm"

type (
	// Client runs package-manager subcommands.
	Client struct {
		npm        string
		cache      string
		userconfig string
		dir        string
		fs         afero.Fs
		goos       string
		lock       bool
		stdin      io.Reader
		stderr     io.Writer
		exec       func(context.Context, runtime.Process) (string, error)
		spawn      func(context.Context, runtime.Process) error
	}

	// ClientOption configures a Client.
	ClientOption func(*Client)
)

// NewClient creates a Client for the package manager executable npm
// (a name looked up on PATH, or a path). Options override the defaults.
func NewClient(npm string, opts ...ClientOption) *Client {
	if npm == "" {
		npm = DefaultExecutable
	}
	c := &Client{
		npm:    npm,
		fs:     afero.NewOsFs(),
		goos:   goruntime.GOOS,
		lock:   true,
		stdin:  os.Stdin,
		stderr: os.Stderr,
		exec:   runtime.Exec,
		spawn:  runtime.Spawn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCache sets an explicit cache directory. It is returned by ResolveCache
// without querying the package manager and forwarded to installs.
func WithCache(dir string) ClientOption {
	return func(c *Client) { c.cache = dir }
}

// WithUserconfig forwards --userconfig to every subcommand that reads config.
func WithUserconfig(path string) ClientOption {
	return func(c *Client) { c.userconfig = path }
}

// WithDir sets the working directory subcommands run in.
func WithDir(dir string) ClientOption {
	return func(c *Client) { c.dir = dir }
}

// WithFs sets the filesystem used to wipe the ephemeral binary directory.
func WithFs(fs afero.Fs) ClientOption {
	return func(c *Client) { c.fs = fs }
}

// WithInstallLock enables or disables the cross-process install lock.
func WithInstallLock(enabled bool) ClientOption {
	return func(c *Client) { c.lock = enabled }
}

// WithStdio sets the streams an install inherits.
func WithStdio(stdin io.Reader, stderr io.Writer) ClientOption {
	return func(c *Client) {
		c.stdin = stdin
		c.stderr = stderr
	}
}

func withGOOS(goos string) ClientOption {
	return func(c *Client) { c.goos = goos }
}

// Executable returns the configured package manager executable.
func (c *Client) Executable() string { return c.npm }

// resolve locates the package manager on the PATH of env.
func (c *Client) resolve(env runtime.Env) (string, error) {
	return runtime.LookPath(c.npm, env, c.lookupDir())
}

func (c *Client) lookupDir() string {
	if c.dir != "" {
		return c.dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
