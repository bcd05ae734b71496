// Package schema owns the embedded, versioned OSSA schema sources: the core
// manifest schemas keyed by semantic version and the per-framework extension
// schemas keyed by name. Everything is compiled once at first use and shared
// read-only across validators.
package schema
