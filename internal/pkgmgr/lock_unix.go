// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd

package pkgmgr

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// installLock holds a blocking exclusive flock next to the ephemeral prefix,
// serializing wipe, install and command start between concurrent invocations
// sharing a cache.
type installLock struct {
	file *os.File
}

// acquireInstallLock opens (or creates) the lock file and blocks until the
// exclusive lock is held. The kernel drops the lock if the process dies.
func acquireInstallLock(cache string) (*installLock, error) {
	if err := os.MkdirAll(cache, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", cache, err)
	}

	lockPath := lockFilePath(cache)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", lockPath, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", lockPath, err)
	}

	return &installLock{file: f}, nil
}

// Release unlocks and closes the lock file. Subsequent calls are no-ops.
func (l *installLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		slog.Debug("flock unlock failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		slog.Debug("lock file close failed", "error", err)
	}
	l.file = nil
}
