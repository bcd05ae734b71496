package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ossa-labs/ossa/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the registered schemas",
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered core schema versions and extension schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := schema.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "core versions: %s\n", strings.Join(registry.Versions(), ", "))
		fmt.Fprintf(out, "extensions:    %s\n", strings.Join(registry.Extensions(), ", "))
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaListCmd)
	rootCmd.AddCommand(schemaCmd)
}
