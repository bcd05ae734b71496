package validate

// Diagnostic codes are stable identifiers. They are part of the public
// contract with callers and must not change between releases.
const (
	// Version resolution. The one fail-fast code: nothing below the version
	// layer can be checked against an unknown schema.
	CodeVersionMismatch = "VERSION_MISMATCH"

	// Structural codes. These accumulate so a caller can fix a document in
	// one edit/validate cycle.
	CodeMissingAPIVersion    = "MISSING_API_VERSION"
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeMissingAgentConfig   = "MISSING_AGENT_CONFIG"
	CodeTypeMismatch         = "TYPE_MISMATCH"
	CodePatternMismatch      = "PATTERN_MISMATCH"
	CodeEnumViolation        = "ENUM_VIOLATION"
	CodeSchemaViolation      = "SCHEMA_VIOLATION"

	// Extension codes, scoped to a single extension key.
	CodeMalformedExtension    = "MALFORMED_EXTENSION"
	CodeUnregisteredExtension = "UNREGISTERED_EXTENSION"

	// Separation policy codes.
	CodeTierCapabilityViolation   = "TIER_CAPABILITY_VIOLATION"
	CodeSeparationViolation       = "SEPARATION_VIOLATION"
	CodeProhibitedActionViolation = "PROHIBITED_ACTION_VIOLATION"

	// Conformance profile codes.
	CodeRequiredRegionMissing  = "REQUIRED_REGION_MISSING"
	CodeForbiddenRegionPresent = "FORBIDDEN_REGION_PRESENT"

	// Batch-level code, reported per fixture.
	CodeFixtureLoadError = "FIXTURE_LOAD_ERROR"

	// Warning-only codes.
	CodeUnknownCapability       = "UNKNOWN_CAPABILITY"
	CodeMissingRecommendedField = "MISSING_RECOMMENDED_FIELD"
)

// AllCodes returns every diagnostic code the engine can emit.
func AllCodes() []string {
	return []string{
		CodeVersionMismatch,
		CodeMissingAPIVersion,
		CodeMissingRequiredField,
		CodeMissingAgentConfig,
		CodeTypeMismatch,
		CodePatternMismatch,
		CodeEnumViolation,
		CodeSchemaViolation,
		CodeMalformedExtension,
		CodeUnregisteredExtension,
		CodeTierCapabilityViolation,
		CodeSeparationViolation,
		CodeProhibitedActionViolation,
		CodeRequiredRegionMissing,
		CodeForbiddenRegionPresent,
		CodeFixtureLoadError,
		CodeUnknownCapability,
		CodeMissingRecommendedField,
	}
}
