package conformance

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/validate"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := NewRunner()
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func loadDoc(t *testing.T, src string) *manifest.Document {
	t.Helper()
	doc, err := manifest.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return doc
}

func reportHasError(rep *Report, code, path string) bool {
	for _, d := range rep.Result.Errors {
		if d.Code == code && d.Path == path {
			return true
		}
	}
	return false
}

const plainAgent = `
apiVersion: ossa/v0.3.4
kind: Agent
metadata: {name: plain, version: 1.0.0}
spec:
  role: Summarize incidents
  llm: {provider: anthropic, model: claude-sonnet-4-5}
`

func TestRun_Baseline(t *testing.T) {
	r := newRunner(t)
	rep, err := r.Run(loadDoc(t, plainAgent), "baseline")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Profile != "baseline" {
		t.Errorf("report profile = %q", rep.Profile)
	}
	if !rep.Result.Valid {
		t.Errorf("expected valid report, got %+v", rep.Result.Errors)
	}
}

func TestRun_UnknownProfile(t *testing.T) {
	r := newRunner(t)
	if _, err := r.Run(loadDoc(t, plainAgent), "galactic"); err == nil {
		t.Fatal("expected an error for an unknown profile")
	}
}

func TestRun_EnterpriseRequiresAccessTier(t *testing.T) {
	r := newRunner(t)

	rep, err := r.Run(loadDoc(t, plainAgent), "enterprise")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reportHasError(rep, validate.CodeMissingRequiredField, "spec.access.tier") {
		t.Errorf("enterprise must require spec.access.tier, got %+v", rep.Result.Errors)
	}

	// The same document is fine under the baseline profile.
	rep, err = r.Run(loadDoc(t, plainAgent), "baseline")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Result.Valid {
		t.Errorf("baseline must not require access fields, got %+v", rep.Result.Errors)
	}
}

func TestRun_EnterpriseWarnsOnUnregisteredExtension(t *testing.T) {
	r := newRunner(t)
	doc := loadDoc(t, plainAgent+`
  access: {tier: tier_1_read}
extensions:
  acme_internal: {rollout: canary}
`)
	rep, err := r.Run(doc, "enterprise")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Result.Valid {
		t.Fatalf("unregistered extension must stay a warning, got %+v", rep.Result.Errors)
	}
	found := false
	for _, w := range rep.Result.Warnings {
		if w.Code == validate.CodeUnregisteredExtension {
			found = true
		}
	}
	if !found {
		t.Errorf("want UNREGISTERED_EXTENSION warning, got %+v", rep.Result.Warnings)
	}
}

func TestRun_GitlabRequiredRegions(t *testing.T) {
	r := newRunner(t)
	rep, err := r.Run(loadDoc(t, plainAgent), "gitlab-kagent")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reportHasError(rep, validate.CodeRequiredRegionMissing, "spec.access.tier") {
		t.Errorf("want REQUIRED_REGION_MISSING at spec.access.tier, got %+v", rep.Result.Errors)
	}
	if !reportHasError(rep, validate.CodeRequiredRegionMissing, "spec.separation.role") {
		t.Errorf("want REQUIRED_REGION_MISSING at spec.separation.role, got %+v", rep.Result.Errors)
	}
}

func TestRun_GitlabForbiddenRegion(t *testing.T) {
	r := newRunner(t)
	doc := loadDoc(t, plainAgent+`
  access: {tier: tier_1_read}
  separation: {role: critic}
extensions:
  swarm: {instructions: coordinate}
`)
	rep, err := r.Run(doc, "gitlab-kagent")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reportHasError(rep, validate.CodeForbiddenRegionPresent, "extensions.swarm") {
		t.Errorf("want FORBIDDEN_REGION_PRESENT at extensions.swarm, got %+v", rep.Result.Errors)
	}
}

func TestRun_GitlabPinnedVersion(t *testing.T) {
	r := newRunner(t)
	doc := loadDoc(t, `
apiVersion: ossa/v0.3.3
kind: Agent
metadata: {name: laggard, version: 1.0.0}
spec:
  role: Validate against a superseded schema
  access: {tier: tier_1_read}
  separation: {role: critic}
`)
	rep, err := r.Run(doc, "gitlab-kagent")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reportHasError(rep, validate.CodeVersionMismatch, "apiVersion") {
		t.Errorf("want VERSION_MISMATCH under pinned profile, got %+v", rep.Result.Errors)
	}
}

func TestRun_VersionMismatchStandsAlone(t *testing.T) {
	// An unresolvable version is fatal: even a profile with required regions
	// must report the single VERSION_MISMATCH and nothing else.
	r := newRunner(t)
	doc := loadDoc(t, `
apiVersion: ossa/v9.9.9
kind: Agent
metadata: {name: future, version: 1.0.0}
spec: {role: r}
`)
	rep, err := r.Run(doc, "gitlab-kagent")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Result.Errors) != 1 || rep.Result.Errors[0].Code != validate.CodeVersionMismatch {
		t.Errorf("want exactly one VERSION_MISMATCH, got %+v", rep.Result.Errors)
	}
}

func TestRun_StructuralFailureSkipsPolicy(t *testing.T) {
	// A document that is both structurally broken and policy-violating
	// reports only the structural problems: policy checks need a sound
	// structure to be meaningful.
	r := newRunner(t)
	doc := loadDoc(t, `
apiVersion: ossa/v0.3.4
kind: Agent
metadata: {name: doubly-broken}
spec:
  role: Review and self-approve
  access:
    tier: tier_2_write_limited
    permissions: [approve_merge]
  separation:
    role: reviewer
`)
	rep, err := r.Run(doc, "baseline")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reportHasError(rep, validate.CodeMissingRequiredField, "metadata.version") {
		t.Errorf("want the structural error, got %+v", rep.Result.Errors)
	}
	for _, d := range rep.Result.Errors {
		if d.Code == validate.CodeSeparationViolation {
			t.Errorf("policy diagnostics must not run on a broken structure: %+v", d)
		}
	}
}

func TestRunBatch(t *testing.T) {
	r := newRunner(t)
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("{unclosed: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	paths := []string{
		"testdata/fixtures/baseline/valid/task-triage.yaml",
		broken,
		"testdata/fixtures/baseline/valid/agent-minimal.yaml",
	}
	results, err := r.RunBatch(context.Background(), paths, "baseline")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	byPath := make(map[string]*Report, len(results))
	for i, fr := range results {
		byPath[fr.Path] = fr.Report
		if i > 0 && results[i-1].Path > fr.Path {
			t.Errorf("results not in sorted path order: %q before %q", results[i-1].Path, fr.Path)
		}
	}

	brokenRep := byPath[broken]
	if brokenRep.Result.Valid || len(brokenRep.Result.Errors) != 1 ||
		brokenRep.Result.Errors[0].Code != validate.CodeFixtureLoadError {
		t.Errorf("broken fixture: want a single FIXTURE_LOAD_ERROR, got %+v", brokenRep.Result)
	}
	for _, good := range []string{paths[0], paths[2]} {
		if !byPath[good].Result.Valid {
			t.Errorf("sibling fixture %s affected by broken one: %+v", good, byPath[good].Result.Errors)
		}
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	r := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RunBatch(ctx, []string{"testdata/fixtures/baseline/valid/agent-minimal.yaml"}, "baseline"); err == nil {
		t.Fatal("expected context cancellation error")
	}
}
