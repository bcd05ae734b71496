package policy

import (
	"sort"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/validate"
)

// Engine evaluates the separation-of-duties policy table against a
// manifest's declared tier, role, and permission lists. It is independent of
// any schema and assumes structural validation of the relevant fields has
// already run.
type Engine struct {
	rules map[string]*Rule
}

// CheckOptions restricts a check to the rule families a conformance profile
// declares applicable. An empty Families list applies every family.
type CheckOptions struct {
	Families []string
}

// NewEngine loads the canonical rule table, validating its symmetry once.
func NewEngine() (*Engine, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}
	return &Engine{rules: rules}, nil
}

// Check runs the three policy checks — tier-capability consistency,
// role-conflict consistency, prohibited-action enforcement — and accumulates
// all diagnostics. None is fail-fast: a manifest with several independent
// policy defects reports them all at once.
//
// A check whose input fields are structurally absent is skipped silently;
// structural validation already reported the absence and policy checks must
// not duplicate or mask structural diagnostics.
func (e *Engine) Check(doc *manifest.Document, opts CheckOptions) *validate.Result {
	res := validate.NewResult()
	e.checkTierCapabilities(doc, res)
	e.checkRoleConflicts(doc, opts, res)
	e.checkProhibitedActions(doc, opts, res)
	return res
}

func (e *Engine) checkTierCapabilities(doc *manifest.Document, res *validate.Result) {
	access := doc.Spec.Access
	if access == nil || access.Tier == "" {
		return
	}
	tier, ok := ParseTier(access.Tier)
	if !ok {
		// Structural validation reported the bad enum value.
		return
	}

	for _, cap := range doc.Capabilities() {
		class, known := Capabilities[cap]
		if !known {
			res.AddWarning(validate.CodeUnknownCapability, "spec.access.tier",
				"capability "+cap+" is not in the capability tier table",
				"add "+cap+" to the capability table or correct the capability name")
			continue
		}
		if tier == Tier4Policy && class.Executable {
			res.AddError(validate.CodeTierCapabilityViolation, "spec.access.tier",
				"tier_4_policy manifest declares executable capability %s; policy-defining agents must not execute", cap)
			continue
		}
		if !tier.Satisfies(class.MinTier) {
			res.AddError(validate.CodeTierCapabilityViolation, "spec.access.tier",
				"capability %s requires %s but manifest declares %s", cap, class.MinTier, tier)
		}
	}
}

func (e *Engine) checkRoleConflicts(doc *manifest.Document, opts CheckOptions, res *validate.Result) {
	sep := doc.Spec.Separation
	if sep == nil || sep.Role == "" {
		return
	}
	role := sep.Role

	for _, declared := range sep.ConflictsWith {
		if declared == role {
			res.AddError(validate.CodeSeparationViolation, "spec.separation.role",
				"role %s declares a conflict with itself", role)
		}
	}

	perms := declaredPermissions(doc)
	if len(perms) == 0 {
		return
	}

	// Conflicting roles come from the canonical table (family-filtered) and
	// from the document's own conflicts_with declarations.
	conflicting := make(map[string]bool)
	if rule, ok := e.rules[role]; ok {
		for _, c := range rule.ConflictsWith {
			if familyEnabled(opts.Families, c.Family) {
				conflicting[c.Role] = true
			}
		}
	}
	for _, declared := range sep.ConflictsWith {
		if declared != role {
			conflicting[declared] = true
		}
	}

	for _, other := range sortedKeys(conflicting) {
		for _, perm := range characteristicPermissions(other) {
			if perms[perm] {
				res.AddError(validate.CodeSeparationViolation, "spec.access.permissions",
					"role %s holds permission %s characteristic of conflicting role %s (%s/%s separation)",
					role, perm, other, role, other)
			}
		}
	}
}

func (e *Engine) checkProhibitedActions(doc *manifest.Document, opts CheckOptions, res *validate.Result) {
	perms := declaredPermissions(doc)
	if len(perms) == 0 {
		return
	}

	if sep := doc.Spec.Separation; sep != nil && sep.Role != "" {
		if rule, ok := e.rules[sep.Role]; ok && roleFamiliesEnabled(rule, opts.Families) {
			for _, action := range rule.ProhibitedActions {
				if perms[action] {
					res.AddError(validate.CodeProhibitedActionViolation, "spec.access.permissions",
						"permission %s is a prohibited action for role %s", action, sep.Role)
				}
			}
		}
	}

	if access := doc.Spec.Access; access != nil {
		for _, action := range access.Prohibited {
			if perms[action] {
				res.AddError(validate.CodeProhibitedActionViolation, "spec.access.permissions",
					"permission %s appears in the manifest's own prohibited list", action)
			}
		}
	}
}

// declaredPermissions returns the manifest's permission list as a set.
func declaredPermissions(doc *manifest.Document) map[string]bool {
	access := doc.Spec.Access
	if access == nil || len(access.Permissions) == 0 {
		return nil
	}
	set := make(map[string]bool, len(access.Permissions))
	for _, p := range access.Permissions {
		set[p] = true
	}
	return set
}

func familyEnabled(families []string, family string) bool {
	if len(families) == 0 {
		return true
	}
	for _, f := range families {
		if f == family {
			return true
		}
	}
	return false
}

// roleFamiliesEnabled reports whether any of the rule's conflict families is
// in scope; a role whose every family is filtered out contributes no
// prohibited actions.
func roleFamiliesEnabled(r *Rule, families []string) bool {
	if len(families) == 0 {
		return true
	}
	for _, c := range r.ConflictsWith {
		if familyEnabled(families, c.Family) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
