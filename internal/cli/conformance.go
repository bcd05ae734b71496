package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ossa-labs/ossa/internal/conformance"
	"github.com/ossa-labs/ossa/internal/config"
	"github.com/ossa-labs/ossa/internal/manifest"
)

var (
	conformanceProfile  string
	conformanceJSON     bool
	conformanceFixtures string
)

var conformanceCmd = &cobra.Command{
	Use:   "conformance",
	Short: "Run conformance profiles against manifests and fixture corpora",
}

var conformanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available conformance profiles",
	RunE:  runConformanceList,
}

var conformanceRunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Validate a manifest under a conformance profile",
	Long: `Run a manifest through structural, extension, and separation validation as
configured by the named profile. Exits 0 when the manifest conforms, 1
otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runConformanceRun,
}

var conformanceVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a profile's valid/invalid fixture corpus against the engine",
	Long: `Check the corpus invariant for a profile: every fixture under <fixtures>/
<profile>/valid must validate, and every fixture under <fixtures>/<profile>/
invalid must fail with at least one diagnostic.`,
	RunE: runConformanceVerify,
}

func init() {
	conformanceRunCmd.Flags().StringVar(&conformanceProfile, "profile", "", "Conformance profile name (default from config)")
	conformanceRunCmd.Flags().BoolVar(&conformanceJSON, "json", false, "Output the report as JSON")
	conformanceVerifyCmd.Flags().StringVar(&conformanceProfile, "profile", "", "Conformance profile name (default from config)")
	conformanceVerifyCmd.Flags().StringVar(&conformanceFixtures, "fixtures", "", "Root directory of the profile fixture corpus")
	conformanceCmd.AddCommand(conformanceListCmd)
	conformanceCmd.AddCommand(conformanceRunCmd)
	conformanceCmd.AddCommand(conformanceVerifyCmd)
	rootCmd.AddCommand(conformanceCmd)
}

// profileName resolves the --profile flag against the configured default.
func profileName() string {
	if conformanceProfile != "" {
		return conformanceProfile
	}
	return config.Get(config.KeyProfile)
}

func runConformanceList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCHEMA\tDESCRIPTION")
	for _, p := range conformance.Profiles() {
		version := p.SchemaVersion
		if version == "" {
			version = "declared"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, version, p.Description)
	}
	return w.Flush()
}

func runConformanceRun(cmd *cobra.Command, args []string) error {
	doc, err := manifest.ParseFile(args[0])
	if err != nil {
		return err
	}

	runner, err := conformance.NewRunner()
	if err != nil {
		return err
	}

	report, err := runner.Run(doc, profileName())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if conformanceJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		renderResult(out, report.Result)
		if report.Result.Valid {
			fmt.Fprintf(out, "%s conforms to profile %s\n", args[0], report.Profile)
		}
	}

	if !report.Result.Valid {
		return fmt.Errorf("%s does not conform to profile %s (%d error(s))",
			args[0], report.Profile, len(report.Result.Errors))
	}
	return nil
}

func runConformanceVerify(cmd *cobra.Command, args []string) error {
	fixtures := conformanceFixtures
	if fixtures == "" {
		fixtures = config.Get(config.KeyFixturesDir)
	}
	if fixtures == "" {
		return fmt.Errorf("no fixtures directory: pass --fixtures or set %s in config", config.KeyFixturesDir)
	}

	name := profileName()
	runner, err := conformance.NewRunner()
	if err != nil {
		return err
	}

	report, err := runner.VerifyCorpus(cmd.Context(), filepath.Join(fixtures, name), name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.OK() {
		fmt.Fprintf(out, "corpus for profile %s: %d fixture(s) behaved as expected\n", name, report.Checked)
		return nil
	}

	for _, f := range report.Failures {
		expectation := "expected invalid, got valid"
		if f.ExpectedValid {
			expectation = "expected valid, got invalid"
		}
		fmt.Fprintf(out, "%s: %s\n", f.Path, expectation)
		renderResult(os.Stderr, f.Result)
	}
	return fmt.Errorf("corpus for profile %s: %d of %d fixture(s) violated the corpus invariant",
		name, len(report.Failures), report.Checked)
}
