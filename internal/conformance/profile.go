package conformance

import (
	"fmt"
	"sort"

	"github.com/ossa-labs/ossa/internal/policy"
)

// Profile is a named bundle of schema and policy requirements layered on top
// of the core schema: regions that must or must not be present, the
// separation rule families in force, and how strictly extensions and
// missing access fields are treated.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// SchemaVersion pins validation to one registered core version. Empty
	// means the document's declared version is used.
	SchemaVersion string `json:"schema_version,omitempty"`

	// RuleFamilies lists the separation rule families this profile applies.
	// Empty means all canonical families.
	RuleFamilies []string `json:"rule_families,omitempty"`

	// RequiredRegions and ForbiddenRegions are dot paths checked against the
	// document beyond the core schema's own required fields.
	RequiredRegions  []string `json:"required_regions,omitempty"`
	ForbiddenRegions []string `json:"forbidden_regions,omitempty"`

	// DisallowUnregistered turns unregistered extension keys into
	// informational warnings.
	DisallowUnregistered bool `json:"disallow_unregistered,omitempty"`

	// RequireAccessFields makes a missing spec.access.tier an error instead
	// of silently skipping the separation checks that need it.
	RequireAccessFields bool `json:"require_access_fields,omitempty"`
}

// builtinProfiles returns the profile table. Keyed by name; the runner hands
// out copies so callers cannot mutate the shared definitions.
func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		"baseline": {
			Name:         "baseline",
			Description:  "Core schema plus all canonical separation rule families",
			RuleFamilies: policy.AllFamilies(),
		},
		"enterprise": {
			Name:                 "enterprise",
			Description:          "Baseline plus mandatory access tier and extension schema registration warnings",
			RuleFamilies:         policy.AllFamilies(),
			DisallowUnregistered: true,
			RequireAccessFields:  true,
		},
		"gitlab-kagent": {
			Name:          "gitlab-kagent",
			Description:   "GitLab kagent deployment profile: pinned schema, declared tier and role required",
			SchemaVersion: "0.3.4",
			RuleFamilies: []string{
				policy.FamilyCriticExecutor,
				policy.FamilySensitiveReadWrite,
				policy.FamilyReviewApproval,
			},
			RequiredRegions:  []string{"spec.access.tier", "spec.separation.role"},
			ForbiddenRegions: []string{"extensions.swarm"},
		},
	}
}

// Profiles returns the available profiles sorted by name.
func Profiles() []Profile {
	table := builtinProfiles()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		out = append(out, table[name])
	}
	return out
}

// LookupProfile resolves a profile by name.
func LookupProfile(name string) (Profile, error) {
	p, ok := builtinProfiles()[name]
	if !ok {
		names := make([]string, 0)
		for _, prof := range Profiles() {
			names = append(names, prof.Name)
		}
		return Profile{}, fmt.Errorf("unknown conformance profile %q (available: %v)", name, names)
	}
	return p, nil
}
