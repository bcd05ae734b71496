// Package policy implements the access-tier and separation-of-duties checks
// that a structural schema cannot express: which tier each capability
// requires, which roles may never be combined, and which actions a role is
// prohibited from holding. The rule tables are static and validated for
// internal consistency once at load time.
package policy
