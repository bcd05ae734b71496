package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ossa-labs/ossa/internal/schema"
)

func newExtensions(t *testing.T) *ExtensionValidator {
	t.Helper()
	registry, err := schema.Default()
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	return NewExtensionValidator(registry)
}

const extensionHost = `
apiVersion: ossa/v0.3.4
kind: Agent
metadata: {name: x, version: 1.0.0}
spec: {role: r}
`

func TestValidateExtensions_NoExtensions(t *testing.T) {
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost), ExtensionOptions{})
	if !res.Valid || len(res.Warnings) != 0 {
		t.Errorf("empty extensions must validate cleanly, got %+v", res)
	}
}

func TestValidateExtensions_RegisteredValid(t *testing.T) {
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost+`
extensions:
  langchain:
    agent_type: react
    max_iterations: 5
  opentelemetry:
    service_name: reviewer
    traces: {enabled: true, exporter: otlp}
`), ExtensionOptions{})
	if !res.Valid {
		t.Errorf("expected valid extensions, got %+v", res.Errors)
	}
}

func TestValidateExtensions_RegisteredInvalid(t *testing.T) {
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost+`
extensions:
  langchain:
    agent_type: zero-shot-telepathy
    max_iterations: 0
`), ExtensionOptions{})
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasError(res, CodeEnumViolation, "extensions.langchain.agent_type") {
		t.Errorf("want ENUM_VIOLATION at extensions.langchain.agent_type, got %+v", res.Errors)
	}
	for _, d := range res.Errors {
		if !strings.HasPrefix(d.Path, "extensions.") {
			t.Errorf("extension diagnostic not namespaced: %+v", d)
		}
	}
}

func TestValidateExtensions_UnregisteredSilent(t *testing.T) {
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost+`
extensions:
  acme_internal:
    anything: [1, two, {three: 3}]
`), ExtensionOptions{})
	if !res.Valid || len(res.Warnings) != 0 {
		t.Errorf("unregistered extensions are open-world, got %+v", res)
	}
}

func TestValidateExtensions_UnregisteredDisallowed(t *testing.T) {
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost+`
extensions:
  acme_internal: {anything: true}
`), ExtensionOptions{DisallowUnregistered: true})
	if !res.Valid {
		t.Fatalf("unregistered extensions must never be errors, got %+v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != CodeUnregisteredExtension {
		t.Fatalf("want one UNREGISTERED_EXTENSION warning, got %+v", res.Warnings)
	}
	if res.Warnings[0].Recommendation == "" {
		t.Error("unregistered-extension warning must carry a recommendation")
	}
}

func TestValidateExtensions_OpenWorldEquivalence(t *testing.T) {
	// A document must validate identically with and without an unregistered
	// extension key, all else equal.
	v := newExtensions(t)
	with := v.Validate(parseDoc(t, extensionHost+`
extensions:
  langchain: {agent_type: react}
  total_stranger: {foo: bar}
`), ExtensionOptions{})
	without := v.Validate(parseDoc(t, extensionHost+`
extensions:
  langchain: {agent_type: react}
`), ExtensionOptions{})
	if !reflect.DeepEqual(with, without) {
		t.Errorf("unknown extension affected diagnostics:\nwith:    %+v\nwithout: %+v", with, without)
	}
}

func TestValidateExtensions_MalformedScopedToKey(t *testing.T) {
	// A non-object extension value fails alone; siblings still validate.
	v := newExtensions(t)
	res := v.Validate(parseDoc(t, extensionHost+`
extensions:
  crewai: "just a string"
  langchain:
    agent_type: zero-shot-telepathy
`), ExtensionOptions{})
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasError(res, CodeMalformedExtension, "extensions.crewai") {
		t.Errorf("want MALFORMED_EXTENSION at extensions.crewai, got %+v", res.Errors)
	}
	if !hasError(res, CodeEnumViolation, "extensions.langchain.agent_type") {
		t.Errorf("sibling extension was not validated: %+v", res.Errors)
	}
}

func TestValidateExtensions_DeterministicOrder(t *testing.T) {
	v := newExtensions(t)
	doc := parseDoc(t, extensionHost+`
extensions:
  swarm: "bad"
  crewai: "bad"
  autogen: "bad"
`)
	first := v.Validate(doc, ExtensionOptions{})
	for i := 0; i < 10; i++ {
		again := v.Validate(doc, ExtensionOptions{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("extension iteration order leaked into results")
		}
	}
	want := []string{"extensions.autogen", "extensions.crewai", "extensions.swarm"}
	for i, d := range first.Errors {
		if d.Path != want[i] {
			t.Errorf("Errors[%d].Path = %q, want %q", i, d.Path, want[i])
		}
	}
}
