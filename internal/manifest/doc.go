// Package manifest defines the OSSA manifest document model and its YAML/JSON
// parsing. A Document is owned by the caller for the duration of one
// validation call; no component retains a reference after returning.
package manifest
