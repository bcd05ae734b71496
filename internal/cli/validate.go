package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ossa-labs/ossa/internal/config"
	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/policy"
	"github.com/ossa-labs/ossa/internal/schema"
	"github.com/ossa-labs/ossa/internal/validate"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a manifest against its declared core schema",
	Long: `Validate a manifest file (YAML or JSON) against the core schema for the
version its apiVersion declares, each extension block against its registered
extension schema, and the declared tier, role, and permissions against the
full separation policy table. Exits 0 when the manifest is valid, 1
otherwise. Use "conformance run" to validate under a named profile instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the validation result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := manifest.ParseFile(args[0])
	if err != nil {
		return err
	}

	registry, err := schema.Default()
	if err != nil {
		return err
	}

	result := validate.NewStructuralValidator(registry).Validate(doc)
	if result.Valid {
		result.Merge(validate.NewExtensionValidator(registry).Validate(doc, validate.ExtensionOptions{
			DisallowUnregistered: config.GetBool(config.KeyStrictExt),
		}))
		engine, err := policy.NewEngine()
		if err != nil {
			return err
		}
		result.Merge(engine.Check(doc, policy.CheckOptions{}))
	}

	out := cmd.OutOrStdout()
	if validateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		renderResult(out, result)
		if result.Valid {
			fmt.Fprintf(out, "%s is valid\n", args[0])
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: %d validation error(s)", args[0], len(result.Errors))
	}
	return nil
}
