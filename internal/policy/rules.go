package policy

import (
	"fmt"
	"sync"
)

// Rule families group the canonical separation rules so a conformance
// profile can declare which apply.
const (
	FamilyCriticExecutor     = "critic-executor"
	FamilyGovernorExecutor   = "governor-executor"
	FamilySensitiveReadWrite = "sensitive-read-write"
	FamilyReviewApproval     = "review-approval"
)

// AllFamilies lists every canonical rule family.
func AllFamilies() []string {
	return []string{
		FamilyCriticExecutor,
		FamilyGovernorExecutor,
		FamilySensitiveReadWrite,
		FamilyReviewApproval,
	}
}

// Conflict names one role a rule's role conflicts with, tagged with the
// family that established the conflict.
type Conflict struct {
	Role   string
	Family string
}

// Rule is the declarative separation constraint for one role: the roles it
// may never be combined with, and the actions it is prohibited from holding
// as permissions.
type Rule struct {
	Role              string
	ConflictsWith     []Conflict
	ProhibitedActions []string
}

// canonicalRules is the static rule table. The conflicts_with relation must
// be symmetric; loadRules validates that once, not per document.
var canonicalRules = []Rule{
	{
		Role:              "critic",
		ConflictsWith:     []Conflict{{"executor", FamilyCriticExecutor}},
		ProhibitedActions: []string{"execute_task", "apply_change", "deploy_environment"},
	},
	{
		Role: "executor",
		ConflictsWith: []Conflict{
			{"critic", FamilyCriticExecutor},
			{"governor", FamilyGovernorExecutor},
		},
		ProhibitedActions: []string{"review_own_output", "approve_own_change"},
	},
	{
		Role:              "governor",
		ConflictsWith:     []Conflict{{"executor", FamilyGovernorExecutor}},
		ProhibitedActions: []string{"execute_task", "execute_pipeline", "deploy_environment"},
	},
	{
		Role:              "security_reader",
		ConflictsWith:     []Conflict{{"security_writer", FamilySensitiveReadWrite}},
		ProhibitedActions: []string{"remediate_vulnerability", "rotate_credentials", "patch_dependency"},
	},
	{
		Role:              "security_writer",
		ConflictsWith:     []Conflict{{"security_reader", FamilySensitiveReadWrite}},
		ProhibitedActions: []string{"approve_remediation"},
	},
	{
		Role:              "compliance_reader",
		ConflictsWith:     []Conflict{{"compliance_writer", FamilySensitiveReadWrite}},
		ProhibitedActions: []string{"update_compliance_record", "waive_control"},
	},
	{
		Role:              "compliance_writer",
		ConflictsWith:     []Conflict{{"compliance_reader", FamilySensitiveReadWrite}},
		ProhibitedActions: []string{"certify_compliance"},
	},
	{
		Role:              "reviewer",
		ConflictsWith:     []Conflict{{"approver", FamilyReviewApproval}},
		ProhibitedActions: []string{"approve_merge", "approve_deployment"},
	},
	{
		Role:              "approver",
		ConflictsWith:     []Conflict{{"reviewer", FamilyReviewApproval}},
		ProhibitedActions: []string{"submit_merge_request"},
	},
}

// rolePermissions maps each role to its characteristic permission set. A
// manifest holding a permission characteristic of a conflicting role is how
// a separation violation manifests in practice.
var rolePermissions = map[string][]string{
	"critic":            {"review_output", "score_quality", "flag_defect"},
	"executor":          {"execute_task", "execute_pipeline", "apply_change", "deploy_environment", "merge_code", "remediate_vulnerability"},
	"governor":          {"define_policy", "approve_policy", "set_guardrails"},
	"security_reader":   {"read_vulnerability_report", "read_audit_log", "read_security_config"},
	"security_writer":   {"remediate_vulnerability", "rotate_credentials", "patch_dependency", "update_security_config"},
	"compliance_reader": {"read_compliance_record", "read_control_evidence"},
	"compliance_writer": {"update_compliance_record", "waive_control", "certify_compliance"},
	"reviewer":          {"review_merge_request", "comment_merge_request", "request_changes"},
	"approver":          {"approve_merge", "approve_deployment", "approve_policy"},
}

var (
	rulesByRole map[string]*Rule
	rulesOnce   sync.Once
	rulesErr    error
)

// loadRules indexes the canonical table and validates its symmetry once per
// process. A broken table is a programming error surfaced at first use.
func loadRules() (map[string]*Rule, error) {
	rulesOnce.Do(func() {
		byRole := make(map[string]*Rule, len(canonicalRules))
		for i := range canonicalRules {
			r := &canonicalRules[i]
			if _, dup := byRole[r.Role]; dup {
				rulesErr = fmt.Errorf("separation rule table: duplicate rule for role %s", r.Role)
				return
			}
			byRole[r.Role] = r
		}
		for _, r := range byRole {
			for _, c := range r.ConflictsWith {
				other, ok := byRole[c.Role]
				if !ok {
					rulesErr = fmt.Errorf("separation rule table: %s conflicts with unknown role %s", r.Role, c.Role)
					return
				}
				if !hasConflict(other, r.Role, c.Family) {
					rulesErr = fmt.Errorf("separation rule table: %s conflicts with %s but not vice versa", r.Role, c.Role)
					return
				}
			}
		}
		rulesByRole = byRole
	})
	return rulesByRole, rulesErr
}

func hasConflict(r *Rule, role, family string) bool {
	for _, c := range r.ConflictsWith {
		if c.Role == role && c.Family == family {
			return true
		}
	}
	return false
}

// characteristicPermissions returns the permission set typical of a role.
func characteristicPermissions(role string) []string {
	return rolePermissions[role]
}
