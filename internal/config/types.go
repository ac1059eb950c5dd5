// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	// CallShellNative runs --call strings through the host shell.
	// Defined locally to avoid coupling config to internal/runtime.
	CallShellNative CallShell = "native"
	// CallShellVirtual runs --call strings in the embedded mvdan/sh interpreter.
	CallShellVirtual CallShell = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultNPM is the package manager executable used when none is configured.
	DefaultNPM = "npm"
	// DefaultRegistry is the registry queried for update notifications.
	DefaultRegistry = "https://registry.npmjs.org"
	// DefaultUpdateInterval is the minimum time between update checks.
	DefaultUpdateInterval = "24h"
)

var (
	// ErrInvalidCallShell is returned when a CallShell value is not recognized.
	ErrInvalidCallShell = errors.New("invalid call shell")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidUpdateCheckConfig is the sentinel error wrapped by InvalidUpdateCheckConfigError.
	ErrInvalidUpdateCheckConfig = errors.New("invalid update check config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CallShell selects how --call strings are executed.
	CallShell string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// Config holds the application configuration.
	Config struct {
		// NPM is the package manager executable.
		NPM string `json:"npm" mapstructure:"npm"`
		// Cache overrides the package manager cache directory.
		Cache string `json:"cache" mapstructure:"cache"`
		// Userconfig is forwarded to the package manager.
		Userconfig string `json:"userconfig" mapstructure:"userconfig"`
		// Install configures ephemeral installs.
		Install InstallConfig `json:"install" mapstructure:"install"`
		// Call configures --call execution.
		Call CallConfig `json:"call" mapstructure:"call"`
		// UpdateCheck configures update notifications.
		UpdateCheck UpdateCheckConfig `json:"update_check" mapstructure:"update_check"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// InstallConfig configures ephemeral installs.
	InstallConfig struct {
		// Lock serializes installs sharing a cache directory.
		Lock bool `json:"lock" mapstructure:"lock"`
	}

	// CallConfig configures --call execution.
	CallConfig struct {
		Shell CallShell `json:"shell" mapstructure:"shell"`
	}

	// UpdateCheckConfig configures update notifications.
	UpdateCheckConfig struct {
		Enabled  bool   `json:"enabled" mapstructure:"enabled"`
		Interval string `json:"interval" mapstructure:"interval"`
		Registry string `json:"registry" mapstructure:"registry"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// InvalidUpdateCheckConfigError is returned when UpdateCheckConfig has invalid fields.
	InvalidUpdateCheckConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when Config has invalid fields.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NPM:     DefaultNPM,
		Install: InstallConfig{Lock: true},
		Call:    CallConfig{Shell: CallShellNative},
		UpdateCheck: UpdateCheckConfig{
			Enabled:  true,
			Interval: DefaultUpdateInterval,
			Registry: DefaultRegistry,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the CallShell is recognized.
func (s CallShell) IsValid() (bool, []error) {
	switch s {
	case CallShellNative, CallShellVirtual:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidCallShell, s, CallShellNative, CallShellVirtual)}
	}
}

// IsValid returns whether the ColorScheme is recognized.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidColorScheme, c)}
	}
}

// IntervalDuration returns the parsed check interval.
func (c UpdateCheckConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("interval %q: %w", c.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval %q must be positive", c.Interval)
	}
	return d, nil
}

// IsValid returns whether the interval parses and the registry is an http(s) URL.
func (c UpdateCheckConfig) IsValid() (bool, []error) {
	var errs []error
	if _, err := c.IntervalDuration(); err != nil {
		errs = append(errs, err)
	}
	if u, err := url.Parse(c.Registry); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("registry %q must be an http(s) URL", c.Registry))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUpdateCheckConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUpdateCheckConfigError.
func (e *InvalidUpdateCheckConfigError) Error() string {
	return fmt.Sprintf("invalid update check config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidUpdateCheckConfig followed by the field errors.
func (e *InvalidUpdateCheckConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUpdateCheckConfig}, e.FieldErrors...)
}

// IsValid returns whether every field of the Config is valid.
// Values coming from environment variables bypass the CUE schema, so
// they are checked here as well.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.NPM == "" {
		errs = append(errs, errors.New("npm must not be empty"))
	}
	if valid, fieldErrs := c.Call.Shell.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UpdateCheck.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
