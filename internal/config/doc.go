// Package config manages user-level settings stored at ~/.xx-cli/config.yaml.
// Values may be overridden with XX_CLI_* environment variables, e.g.
// XX_CLI_CLONE_METHOD=git selects the system git binary for cloning.
package config
