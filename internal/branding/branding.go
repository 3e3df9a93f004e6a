// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GoModule       string `yaml:"go_module"`
	TemplateOrgURL string `yaml:"template_org_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:        "xx-cli",
			DisplayName:    "xx-cli",
			Description:    "CLI tool for scaffolding projects from templates",
			HomeDir:        ".xx-cli",
			EnvPrefix:      "XX_CLI",
			GoModule:       "github.com/xx-template/xx-cli",
			TemplateOrgURL: "https://github.com/xx-template",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "xx-cli").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".xx-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "XX_CLI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// TemplateOrgURL returns the base URL that hosts the built-in template
// repositories. Catalog entries are resolved relative to it.
func TemplateOrgURL() string { load(); return strings.TrimSuffix(defaults.TemplateOrgURL, "/") }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "XX_CLI_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
