package cli

import (
	"github.com/spf13/cobra"

	"github.com/ossa-labs/ossa/internal/branding"
	"github.com/ossa-labs/ossa/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: `ossa validates declarative agent manifests (Agent, Task, Workflow) against
versioned core schemas, validates vendor extension blocks against their
registered extension schemas, and enforces access-tier and
separation-of-duties policy that a structural schema cannot express.

Documentation: ` + branding.DocsURL(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
