// Package scaffold generates new OSSA manifests from embedded templates. It
// powers the "ossa init" command, producing a manifest that already passes
// structural validation so users start from a known-good document.
package scaffold
