// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || freebsd)

package pkgmgr

import "errors"

var errFlockUnavailable = errors.New("flock not available on this platform")

type installLock struct{}

// acquireInstallLock is unavailable on this platform; installs run unlocked.
func acquireInstallLock(string) (*installLock, error) {
	return nil, errFlockUnavailable
}

// Release is a no-op on this platform.
func (l *installLock) Release() {}
