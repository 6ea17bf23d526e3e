// Package config manages user-level settings stored at ~/.extctl/config.yaml.
// Values can be overridden with EXTCTL_* environment variables; command-line
// flags are bound on top by the cli package.
package config
