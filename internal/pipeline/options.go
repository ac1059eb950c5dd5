// SPDX-License-Identifier: MPL-2.0

package pipeline

import "github.com/invowk/npx/internal/runtime"

// Options is the parsed invocation. It is built once by the CLI and never
// modified afterwards.
type Options struct {
	// Command is the executable name to run.
	Command string
	// Packages are the specifiers that provide Command.
	Packages []string
	// Install permits installing Packages when Command is not on PATH.
	Install bool
	// IgnoreExisting forces an install even when Command is on PATH.
	IgnoreExisting bool
	// CmdHadVersion is set when the command positional carried a version.
	CmdHadVersion bool
	// PackageRequested is set when packages were named explicitly.
	PackageRequested bool
	// Call is a shell string run instead of Command with CmdOpts.
	Call string
	// Shell runs Call instead of the platform default shell.
	Shell string
	// ShellMode selects the host shell or the embedded interpreter for Call.
	ShellMode runtime.ShellMode
	// Cache overrides the package manager's cache directory.
	Cache string
	// Userconfig is forwarded to the package manager.
	Userconfig string
	// NPM is the package manager executable.
	NPM string
	// CmdOpts are forwarded to Command.
	CmdOpts []string
	// ShellAutoFallback requests the fallback snippet for a shell. A non-nil
	// empty string means the shell is detected from SHELL.
	ShellAutoFallback *string
}

// forcesInstall reports whether the options rule out reusing an executable
// already on PATH.
func (o Options) forcesInstall() bool {
	return o.CmdHadVersion || o.PackageRequested || o.IgnoreExisting
}
