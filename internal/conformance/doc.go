// Package conformance orchestrates the structural, extension, and
// separation validators against named conformance profiles, for single
// documents, parallel fixture batches, and the paired valid/invalid corpus
// self-test.
package conformance
