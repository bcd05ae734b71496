package conformance

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ossa-labs/ossa/internal/validate"
)

// Report is the merged outcome of one document's conformance run.
type Report struct {
	Profile string           `json:"profile"`
	Result  *validate.Result `json:"result"`
}

// FixtureResult pairs a batch report with the fixture it belongs to.
type FixtureResult struct {
	Path   string  `json:"path"`
	Report *Report `json:"report"`
}

// CorpusFailure records one fixture that violated the corpus invariant.
type CorpusFailure struct {
	Path          string           `json:"path"`
	ExpectedValid bool             `json:"expected_valid"`
	Result        *validate.Result `json:"result"`
}

// CorpusReport is the outcome of verifying a profile's paired valid/invalid
// fixture corpus against the engine itself.
type CorpusReport struct {
	Profile  string          `json:"profile"`
	Checked  int             `json:"checked"`
	Failures []CorpusFailure `json:"failures"`
}

// OK reports whether every fixture behaved as its directory promises.
func (c *CorpusReport) OK() bool {
	return len(c.Failures) == 0
}

// VerifyCorpus cross-checks the corpus invariant for a profile: every
// fixture under root/valid must validate, and every fixture under
// root/invalid must fail with at least one error. This is the engine's own
// self-test, exposed as a first-class operation.
func (r *Runner) VerifyCorpus(ctx context.Context, root, profileName string) (*CorpusReport, error) {
	report := &CorpusReport{Profile: profileName}

	for _, set := range []struct {
		dir           string
		expectedValid bool
	}{
		{filepath.Join(root, "valid"), true},
		{filepath.Join(root, "invalid"), false},
	} {
		paths, err := listFixtures(set.dir)
		if err != nil {
			return nil, err
		}
		results, err := r.RunBatch(ctx, paths, profileName)
		if err != nil {
			return nil, err
		}
		for _, fr := range results {
			report.Checked++
			res := fr.Report.Result
			ok := res.Valid
			if !set.expectedValid {
				// An invalid fixture must fail loudly: not valid, and with
				// at least one error diagnostic.
				ok = !res.Valid && len(res.Errors) > 0
			}
			if !ok {
				report.Failures = append(report.Failures, CorpusFailure{
					Path:          fr.Path,
					ExpectedValid: set.expectedValid,
					Result:        res,
				})
			}
		}
	}
	return report, nil
}

// listFixtures returns the manifest files directly under dir, sorted.
func listFixtures(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing fixtures in %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml", ".json":
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ListFixtureDirs returns the profile corpus roots under a fixtures
// directory, one per profile that has fixtures.
func ListFixtureDirs(fixturesRoot string) ([]string, error) {
	entries, err := os.ReadDir(fixturesRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fixtures root %s: %w", fixturesRoot, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("listing fixture corpus %s: %w", fixturesRoot, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(fixturesRoot, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
