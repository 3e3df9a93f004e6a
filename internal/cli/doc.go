// Package cli defines the Cobra command tree for xx-cli. Each file in this
// package registers one top-level command (create, list, config, version)
// with the root command. Commands delegate to internal packages for the
// actual work and only handle flag parsing, prompting, and output.
package cli
