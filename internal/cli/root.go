package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pacsweep",
		Short: "Clean up pacman's package cache",
		Long: `Pacsweep inspects the local package cache against the installed-package
database and selects archives that are safe to remove:

  - archives of packages that are no longer installed
  - old versions of installed packages beyond a retention count

Selections are listed by default and only deleted on request. More
flexible than "pacman -Sc[c]".`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (defaults to the per-user config if present)")

	// Add subcommands
	rootCmd.AddCommand(NewCleanCmd())
	rootCmd.AddCommand(NewVerifyCmd())

	return rootCmd
}
