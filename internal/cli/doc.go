// Package cli wires the validation engine to its cobra command surface.
// Commands parse arguments, call the engine, render diagnostics, and map
// validity to the process exit code; no validation logic lives here.
package cli
