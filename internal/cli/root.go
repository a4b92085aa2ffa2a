package cli

import "github.com/spf13/cobra"

// RootCmd assembles the pestops command tree.
func RootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "pestops",
		Short:   "Pest-control appointment records backend",
		Version: version,
		Long: `pestops serves the appointment records API (treatment products, rodent
registers, operation sheets, certificates) and offers maintenance commands.`,
		SilenceUsage: true,
	}
	root.AddCommand(ServeCmd())
	root.AddCommand(MigrateCmd())
	root.AddCommand(DuplicateCmd())
	return root
}
