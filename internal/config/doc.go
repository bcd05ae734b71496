// Package config manages CLI configuration stored in ~/.ossa/config.yaml,
// overridable through OSSA_-prefixed environment variables.
package config
