package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/schema"
	"github.com/ossa-labs/ossa/internal/validate"
)

//go:embed templates
var templateFS embed.FS

// Data holds the template variables for a scaffolded manifest.
type Data struct {
	Name        string        // metadata.name, e.g. "incident-summarizer"
	Kind        manifest.Kind // Agent, Task, or Workflow
	Description string        // metadata.description
	Version     string        // metadata.version, semver
	APIVersion  string        // wire form, e.g. "ossa/v0.3.4"
	Provider    string        // spec.llm.provider (Agent only)
	Model       string        // spec.llm.model (Agent only)
	Tier        string        // spec.access.tier (Agent only)
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData creates scaffold data for the latest registered schema version with
// conservative defaults: a read-only tier and a placeholder LLM.
func NewData(kind manifest.Kind, name string) (*Data, error) {
	registry, err := schema.Default()
	if err != nil {
		return nil, fmt.Errorf("loading schema registry: %w", err)
	}
	return &Data{
		Name:        name,
		Kind:        kind,
		Description: fmt.Sprintf("OSSA %s: %s", strings.ToLower(string(kind)), name),
		Version:     "0.1.0",
		APIVersion:  schema.Namespace + "/v" + registry.LatestVersion(),
		Provider:    "anthropic",
		Model:       "claude-sonnet-4-5",
		Tier:        "tier_1_read",
	}, nil
}

// Generate renders the template for data.Kind into outPath. It refuses to
// overwrite an existing file, then validates what it wrote; validation
// findings come back as warnings so a generated-but-imperfect manifest is
// still on disk for the user to edit.
func Generate(data *Data, outPath string) (*Result, error) {
	if !data.Kind.IsValid() {
		return nil, fmt.Errorf("unknown manifest kind %q", data.Kind)
	}

	tmplName := strings.ToLower(string(data.Kind)) + ".yaml.tmpl"
	tmplBytes, err := templateFS.ReadFile("templates/" + tmplName)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplName, err)
	}

	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}

	tmpl, err := template.New(tmplName).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplName, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplName, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}
	result.Warnings = validateGenerated(outPath)
	return result, nil
}

// validateGenerated runs the structural validator over the file just written
// and flattens its diagnostics into warning strings.
func validateGenerated(path string) []string {
	doc, err := manifest.ParseFile(path)
	if err != nil {
		return []string{fmt.Sprintf("could not validate generated manifest: %v", err)}
	}
	registry, err := schema.Default()
	if err != nil {
		return []string{fmt.Sprintf("could not validate generated manifest: %v", err)}
	}

	var warnings []string
	res := validate.NewStructuralValidator(registry).Validate(doc)
	for _, d := range append(res.Errors, res.Warnings...) {
		msg := d.Message
		if d.Path != "" {
			msg = d.Path + ": " + msg
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
