package validate

import (
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/schema"
)

// ExtensionValidator validates the vendor extension blocks of a manifest
// against independently registered extension schemas.
type ExtensionValidator struct {
	registry *schema.Registry
}

// ExtensionOptions configures per-profile extension behavior.
type ExtensionOptions struct {
	// DisallowUnregistered makes unregistered extension keys produce an
	// informational warning. They are never errors: the extension namespace
	// is open-world so manifests can carry arbitrary vendor metadata.
	DisallowUnregistered bool
}

// NewExtensionValidator returns a validator backed by the given registry.
func NewExtensionValidator(registry *schema.Registry) *ExtensionValidator {
	return &ExtensionValidator{registry: registry}
}

// Validate checks every key under the document's extensions map against its
// registered schema, if any. Each extension is validated independently: a
// malformed extension never aborts validation of its siblings. Keys are
// visited in sorted order so repeated runs produce identical results.
func (v *ExtensionValidator) Validate(doc *manifest.Document, opts ExtensionOptions) *Result {
	res := NewResult()
	if len(doc.Extensions) == 0 {
		return res
	}

	names := make([]string, 0, len(doc.Extensions))
	for name := range doc.Extensions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prefix := "extensions." + name
		compiled, ok := v.registry.ExtensionSchema(name)
		if !ok {
			if opts.DisallowUnregistered {
				res.AddWarning(CodeUnregisteredExtension, prefix,
					"extension "+name+" has no registered schema",
					"register a schema for "+name+" or remove the extension block")
			}
			continue
		}

		err := compiled.Validate(doc.Extensions[name])
		if err == nil {
			continue
		}
		ve, isValidation := err.(*jsonschema.ValidationError)
		if !isValidation {
			res.AddError(CodeMalformedExtension, prefix, "extension %s could not be validated: %v", name, err)
			continue
		}
		if rootTypeError(ve) {
			// Not an object where the extension schema demands one: a single
			// scoped error, siblings unaffected.
			res.AddError(CodeMalformedExtension, prefix,
				"extension %s must be an object", name)
			continue
		}
		collectDiagnostics(ve, prefix, extensionRequiredCode, res)
	}
	return res
}

// extensionRequiredCode is the required-property code mapping for extension
// sub-documents; the dedicated top-level codes do not apply inside them.
func extensionRequiredCode(string, string) string {
	return CodeMissingRequiredField
}

// rootTypeError reports whether the error tree contains a type violation at
// the extension value's root.
func rootTypeError(ve *jsonschema.ValidationError) bool {
	if len(ve.Causes) == 0 {
		_, isType := ve.ErrorKind.(*kind.Type)
		return isType && len(ve.InstanceLocation) == 0
	}
	for _, cause := range ve.Causes {
		if rootTypeError(cause) {
			return true
		}
	}
	return false
}
