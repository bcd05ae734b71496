package manifest

// Kind is the manifest kind discriminator.
type Kind string

const (
	KindAgent    Kind = "Agent"
	KindTask     Kind = "Task"
	KindWorkflow Kind = "Workflow"
)

// ValidKinds contains all recognized kind values.
var ValidKinds = []Kind{KindAgent, KindTask, KindWorkflow}

// IsValid reports whether k is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindAgent, KindTask, KindWorkflow:
		return true
	}
	return false
}

// Document is a parsed OSSA manifest. The typed fields cover everything the
// engine inspects directly; Raw exposes the full normalized document for
// schema validation so unknown fields survive the round trip.
type Document struct {
	APIVersion string         `json:"apiVersion"`
	Kind       Kind           `json:"kind"`
	Metadata   Metadata       `json:"metadata"`
	Spec       Spec           `json:"spec"`
	Extensions map[string]any `json:"extensions,omitempty"`

	raw map[string]any
}

// Metadata contains manifest metadata.
type Metadata struct {
	Name        string            `json:"name"`
	Version     string            `json:"version,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Spec is the kind-specific manifest body. All fields are optional at parse
// time; which ones are required is the schema's business.
type Spec struct {
	Role         string            `json:"role,omitempty"`
	LLM          *LLMConfig        `json:"llm,omitempty"`
	Tools        []ToolConfig      `json:"tools,omitempty"`
	Capabilities []string          `json:"capabilities,omitempty"`
	Access       *AccessConfig     `json:"access,omitempty"`
	Separation   *SeparationConfig `json:"separation,omitempty"`
}

// LLMConfig contains model configuration for an Agent manifest.
type LLMConfig struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

// ToolConfig describes a tool an agent may invoke.
type ToolConfig struct {
	Type         string   `json:"type"`
	Name         string   `json:"name,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// AccessConfig declares the manifest's access tier and permission lists.
type AccessConfig struct {
	Tier        string   `json:"tier,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Prohibited  []string `json:"prohibited,omitempty"`
}

// SeparationConfig declares the manifest's separation-of-duties role and
// the roles it conflicts with.
type SeparationConfig struct {
	Role          string   `json:"role,omitempty"`
	ConflictsWith []string `json:"conflicts_with,omitempty"`
}

// Raw returns the normalized generic form of the document. The map is shared,
// not copied; callers must treat it as read-only.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Capabilities returns the union of spec-level capabilities and every tool's
// capability list, preserving first-seen order.
func (d *Document) Capabilities() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(caps []string) {
		for _, c := range caps {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	add(d.Spec.Capabilities)
	for _, t := range d.Spec.Tools {
		add(t.Capabilities)
	}
	return out
}
