// SPDX-License-Identifier: MPL-2.0

// Package config handles npx configuration using Viper.
//
// Configuration is read from config.cue (validated against the embedded #Config
// schema) or config.toml in the platform configuration directory, or from an
// explicit file. NPX_-prefixed environment variables override file values,
// for example NPX_NPM or NPX_INSTALL_LOCK. Command-line flags override both.
package config
