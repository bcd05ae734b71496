package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ossa-labs/ossa/internal/manifest"
	"github.com/ossa-labs/ossa/internal/scaffold"
)

var initOutput string

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Output file (default <name>.yaml)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <kind> <name>",
	Short: "Scaffold a new manifest from a template",
	Long: `init writes a starter manifest for the given kind (Agent, Task, or
Workflow) targeting the latest registered schema version. The generated file
passes structural validation as written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		name := args[1]

		data, err := scaffold.NewData(kind, name)
		if err != nil {
			return err
		}

		out := initOutput
		if out == "" {
			out = name + ".yaml"
		}

		result, err := scaffold.Generate(data, out)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", result.Path)
		for _, w := range result.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	},
}

// parseKindArg accepts the kind case-insensitively.
func parseKindArg(arg string) (manifest.Kind, error) {
	for _, k := range manifest.ValidKinds {
		if strings.EqualFold(arg, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown manifest kind %q (one of: Agent, Task, Workflow)", arg)
}
