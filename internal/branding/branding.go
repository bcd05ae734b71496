// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml, then rebuild; //go:embed bakes the values into
// the binary. Runtime code asks this package for names and prefixes instead
// of hardcoding them, so a rebrand is a one-file change.
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
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	DocsURL     string `yaml:"docs_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "ossa",
			DisplayName: "OSSA",
			Description: "Validation and conformance engine for OSSA agent manifests",
			HomeDir:     ".ossa",
			EnvPrefix:   "OSSA",
			DocsURL:     "https://openspecagents.org/docs",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ossa").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "OSSA").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ossa").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OSSA").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DocsURL returns the documentation site linked from help output.
func DocsURL() string { load(); return defaults.DocsURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("PROFILE") →
// "OSSA_PROFILE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
