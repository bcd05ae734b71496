// Package validate implements structural and extension validation of OSSA
// manifests. Every validator is a pure function over the document and the
// immutable compiled-schema registry: violations are returned as Result
// values, never raised as errors, and each pass collects all findings rather
// than stopping at the first.
package validate
