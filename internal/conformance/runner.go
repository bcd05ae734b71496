package conformance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/policy"
	"github.com/ossa-labs/ossa/internal/schema"
	"github.com/ossa-labs/ossa/internal/validate"
)

// batchConcurrency bounds how many fixtures validate in parallel. Fixtures
// share nothing beyond the immutable schema and rule tables, so the batch is
// embarrassingly parallel.
const batchConcurrency = 8

// Runner orchestrates the structural, extension, and separation validators
// against a named conformance profile.
type Runner struct {
	registry   *schema.Registry
	structural *validate.StructuralValidator
	extensions *validate.ExtensionValidator
	policy     *policy.Engine
}

// NewRunner builds a runner on the process-wide schema registry and the
// canonical separation rule table.
func NewRunner() (*Runner, error) {
	registry, err := schema.Default()
	if err != nil {
		return nil, fmt.Errorf("loading schema registry: %w", err)
	}
	return NewRunnerWithRegistry(registry)
}

// NewRunnerWithRegistry builds a runner on an explicit registry, used by
// tests that load schemas from a throwaway filesystem.
func NewRunnerWithRegistry(registry *schema.Registry) (*Runner, error) {
	engine, err := policy.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("loading separation rules: %w", err)
	}
	return &Runner{
		registry:   registry,
		structural: validate.NewStructuralValidator(registry),
		extensions: validate.NewExtensionValidator(registry),
		policy:     engine,
	}, nil
}

// Run validates a single document under a profile: structural validation
// first, then — only when the core structure held up — extension and
// separation validation, with every diagnostic merged into one report.
func (r *Runner) Run(doc *manifest.Document, profileName string) (*Report, error) {
	profile, err := LookupProfile(profileName)
	if err != nil {
		return nil, err
	}
	return r.run(doc, profile), nil
}

func (r *Runner) run(doc *manifest.Document, profile Profile) *Report {
	result := r.structural.ValidateVersion(doc, profile.SchemaVersion)

	// An unresolved version is fatal: the single VERSION_MISMATCH stands
	// alone, with no region, extension, or policy diagnostics behind it.
	if versionMismatch(result) {
		return &Report{Profile: profile.Name, Result: result}
	}

	r.checkRegions(doc, profile, result)

	if result.Valid {
		result.Merge(r.extensions.Validate(doc, validate.ExtensionOptions{
			DisallowUnregistered: profile.DisallowUnregistered,
		}))
		result.Merge(r.policy.Check(doc, policy.CheckOptions{
			Families: profile.RuleFamilies,
		}))
	}

	return &Report{Profile: profile.Name, Result: result}
}

// versionMismatch reports whether the structural result failed version
// resolution.
func versionMismatch(res *validate.Result) bool {
	for _, d := range res.Errors {
		if d.Code == validate.CodeVersionMismatch {
			return true
		}
	}
	return false
}

// checkRegions enforces the profile's required/forbidden region lists and
// its missing-access-fields policy.
func (r *Runner) checkRegions(doc *manifest.Document, profile Profile, result *validate.Result) {
	raw := doc.Raw()
	for _, region := range profile.RequiredRegions {
		if _, ok := lookupPath(raw, region); !ok {
			result.AddError(validate.CodeRequiredRegionMissing, region,
				"profile %s requires %s to be present", profile.Name, region)
		}
	}
	for _, region := range profile.ForbiddenRegions {
		if _, ok := lookupPath(raw, region); ok {
			result.AddError(validate.CodeForbiddenRegionPresent, region,
				"profile %s forbids %s", profile.Name, region)
		}
	}
	if profile.RequireAccessFields {
		if doc.Spec.Access == nil || doc.Spec.Access.Tier == "" {
			result.AddError(validate.CodeMissingRequiredField, "spec.access.tier",
				"profile %s requires an access tier declaration", profile.Name)
		}
	}
}

// lookupPath resolves a dot path against the normalized document.
func lookupPath(raw map[string]any, dotted string) (any, bool) {
	var cur any = raw
	for _, part := range strings.Split(dotted, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// RunBatch validates every fixture in paths independently and in parallel.
// One fixture's load failure becomes a FIXTURE_LOAD_ERROR entry for that
// fixture alone; it never aborts its siblings. Results come back sorted by
// fixture path, regardless of completion order, so batch output is
// deterministic. Cancelling ctx abandons fixtures that have not started.
func (r *Runner) RunBatch(ctx context.Context, paths []string, profileName string) ([]FixtureResult, error) {
	profile, err := LookupProfile(profileName)
	if err != nil {
		return nil, err
	}

	ordered := append([]string(nil), paths...)
	sort.Strings(ordered)

	results := make([]FixtureResult, len(ordered))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, path := range ordered {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.runFixture(path, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runFixture validates one fixture file; a document that cannot be loaded
// yields an invalid result with a single FIXTURE_LOAD_ERROR diagnostic.
func (r *Runner) runFixture(path string, profile Profile) FixtureResult {
	doc, err := manifest.ParseFile(path)
	if err != nil {
		res := validate.NewResult()
		res.AddError(validate.CodeFixtureLoadError, "", "loading fixture: %v", err)
		return FixtureResult{
			Path:   path,
			Report: &Report{Profile: profile.Name, Result: res},
		}
	}
	return FixtureResult{Path: path, Report: r.run(doc, profile)}
}
