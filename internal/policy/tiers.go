package policy

// Tier is an access tier classification. The three read/write tiers are
// ordered; tier_4_policy is disjoint: policy-defining agents are
// categorically forbidden from executing, so it compares with the write
// tiers in neither direction.
type Tier string

const (
	Tier1Read          Tier = "tier_1_read"
	Tier2WriteLimited  Tier = "tier_2_write_limited"
	Tier3WriteElevated Tier = "tier_3_write_elevated"
	Tier4Policy        Tier = "tier_4_policy"
)

var tierRanks = map[Tier]int{
	Tier1Read:          1,
	Tier2WriteLimited:  2,
	Tier3WriteElevated: 3,
}

// ParseTier returns the tier for a declared string value.
func ParseTier(s string) (Tier, bool) {
	switch t := Tier(s); t {
	case Tier1Read, Tier2WriteLimited, Tier3WriteElevated, Tier4Policy:
		return t, true
	}
	return "", false
}

// Satisfies reports whether a manifest declaring tier t may hold a
// capability requiring the given tier. tier_4_policy satisfies only read
// and policy requirements; no ordered tier satisfies a policy requirement.
func (t Tier) Satisfies(required Tier) bool {
	if t == Tier4Policy {
		return required == Tier1Read || required == Tier4Policy
	}
	if required == Tier4Policy {
		return false
	}
	return tierRanks[t] >= tierRanks[required]
}

// CapabilityClass describes the static policy attributes of a capability:
// the minimum tier a manifest must declare to hold it, and whether it is
// flagged executable in the core schema's sense.
type CapabilityClass struct {
	MinTier    Tier
	Executable bool
}

// Capabilities is the static capability table. Unknown capabilities are not
// errors; the engine warns and moves on.
var Capabilities = map[string]CapabilityClass{
	// Read-only.
	"read_code":                 {Tier1Read, false},
	"read_logs":                 {Tier1Read, false},
	"read_metrics":              {Tier1Read, false},
	"read_vulnerability_report": {Tier1Read, false},
	"read_audit_log":            {Tier1Read, false},
	"summarize_incident":        {Tier1Read, false},

	// Limited write: annotations and review artifacts.
	"comment_merge_request": {Tier2WriteLimited, false},
	"label_issue":           {Tier2WriteLimited, false},
	"create_issue":          {Tier2WriteLimited, false},
	"update_documentation":  {Tier2WriteLimited, false},

	// Elevated write: all executable.
	"push_code":               {Tier3WriteElevated, true},
	"merge_code":              {Tier3WriteElevated, true},
	"execute_pipeline":        {Tier3WriteElevated, true},
	"deploy_environment":      {Tier3WriteElevated, true},
	"remediate_vulnerability": {Tier3WriteElevated, true},
	"rotate_credentials":      {Tier3WriteElevated, true},

	// Policy definition.
	"define_policy":  {Tier4Policy, false},
	"approve_policy": {Tier4Policy, false},
	"set_guardrails": {Tier4Policy, false},
}
