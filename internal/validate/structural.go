package validate

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/schema"
)

var printer = message.NewPrinter(language.English)

// StructuralValidator validates a manifest against the core schema for the
// version the document declares.
type StructuralValidator struct {
	registry *schema.Registry
}

// NewStructuralValidator returns a validator backed by the given registry.
func NewStructuralValidator(registry *schema.Registry) *StructuralValidator {
	return &StructuralValidator{registry: registry}
}

// Validate resolves the document's declared apiVersion and walks the document
// against the compiled core schema, collecting every violation in one pass.
//
// An apiVersion that does not resolve to a registered schema yields exactly
// one VERSION_MISMATCH error and nothing else. A missing apiVersion is an
// ordinary structural error; the document is still checked best-effort
// against the latest registered schema.
func (v *StructuralValidator) Validate(doc *manifest.Document) *Result {
	return v.ValidateVersion(doc, "")
}

// ValidateVersion behaves like Validate but, when version is non-empty,
// pins validation to that registered schema version. A document declaring a
// different version than the pin fails with VERSION_MISMATCH.
func (v *StructuralValidator) ValidateVersion(doc *manifest.Document, version string) *Result {
	res := NewResult()

	target := version
	if doc.APIVersion == "" {
		// Best-effort: the schema's own required list reports the missing
		// apiVersion; validate the rest against the latest (or pinned) schema.
		if target == "" {
			target = v.registry.LatestVersion()
		}
	} else {
		declared, err := schema.ParseAPIVersion(doc.APIVersion)
		if err != nil {
			res.AddError(CodeVersionMismatch, "apiVersion",
				"apiVersion %q does not match %s/v<major>.<minor>.<patch>", doc.APIVersion, schema.Namespace)
			return res
		}
		if target != "" && declared != target {
			res.AddError(CodeVersionMismatch, "apiVersion",
				"apiVersion declares %s but profile requires %s", declared, target)
			return res
		}
		if target == "" {
			target = declared
		}
	}

	compiled, err := v.registry.CoreSchema(target)
	if err != nil {
		res.AddError(CodeVersionMismatch, "apiVersion",
			"no schema registered for version %s (known: %s)", target, strings.Join(v.registry.Versions(), ", "))
		return res
	}

	if err := compiled.Validate(doc.Raw()); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			res.AddError(CodeSchemaViolation, "", "schema validation failed: %v", err)
			return res
		}
		collectDiagnostics(ve, "", structuralCode(doc.Kind), res)
	}

	v.recommend(doc, res)
	return res
}

// structuralCode maps a missing required property to its structural code.
// Two fields get dedicated codes so callers can branch on them without
// parsing paths.
func structuralCode(docKind manifest.Kind) func(path, missing string) string {
	return func(path, missing string) string {
		if path == "" && missing == "apiVersion" {
			return CodeMissingAPIVersion
		}
		if path == "" && missing == "spec" && docKind == manifest.KindAgent {
			return CodeMissingAgentConfig
		}
		return CodeMissingRequiredField
	}
}

// recommend emits best-practice warnings for Agent manifests. These mirror
// what the conversion adapters need to produce a useful native payload.
func (v *StructuralValidator) recommend(doc *manifest.Document, res *Result) {
	if doc.Kind != manifest.KindAgent {
		return
	}
	if doc.Spec.Role == "" {
		res.AddWarning(CodeMissingRecommendedField, "spec.role",
			"agent manifest does not declare a role",
			"set spec.role so downstream frameworks can derive a system prompt")
	}
	if doc.Spec.LLM == nil {
		res.AddWarning(CodeMissingRecommendedField, "spec.llm",
			"agent manifest does not declare an LLM configuration",
			"set spec.llm.provider and spec.llm.model to make conversions deterministic")
	}
}

// collectDiagnostics walks a jsonschema error tree and appends one diagnostic
// per leaf violation. requiredCode chooses the code for missing required
// properties; pathPrefix namespaces every path (used for extensions).
func collectDiagnostics(ve *jsonschema.ValidationError, pathPrefix string, requiredCode func(path, missing string) string, res *Result) {
	var walk func(ve *jsonschema.ValidationError)
	seen := make(map[string]bool)
	add := func(code, path, msg string) {
		key := code + "|" + path + "|" + msg
		if seen[key] {
			return
		}
		seen[key] = true
		res.AddError(code, path, "%s", msg)
	}

	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) > 0 {
			for _, cause := range ve.Causes {
				walk(cause)
			}
			return
		}

		path := joinPath(pathPrefix, ve.InstanceLocation)
		switch k := ve.ErrorKind.(type) {
		case *kind.Required:
			for _, missing := range k.Missing {
				code := requiredCode(joinPath("", ve.InstanceLocation), missing)
				add(code, joinDot(path, missing), "missing required field "+missing)
			}
		case *kind.Type:
			add(CodeTypeMismatch, path, ve.ErrorKind.LocalizedString(printer))
		case *kind.Enum:
			add(CodeEnumViolation, path, ve.ErrorKind.LocalizedString(printer))
		case *kind.Pattern:
			add(CodePatternMismatch, path, ve.ErrorKind.LocalizedString(printer))
		default:
			add(CodeSchemaViolation, path, ve.ErrorKind.LocalizedString(printer))
		}
	}
	walk(ve)
}

// joinPath renders an instance location as a dot path under an optional
// prefix.
func joinPath(prefix string, location []string) string {
	return joinDot(prefix, strings.Join(location, "."))
}

func joinDot(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "." + b
	}
}
