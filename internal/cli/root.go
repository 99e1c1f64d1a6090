package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterview-dev/clusterview/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "clusterview",
	Short: "ClusterView - console for the cluster monitoring platform",
	Long: `ClusterView console - inspect clusters, hosts, services, alerts and logs
from the terminal.

Log in once; the session token is stored locally and attached to every call
until you log out or it expires.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("clusterview version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewPasswdCmd())
	rootCmd.AddCommand(commands.NewOpenCmd())
	rootCmd.AddCommand(commands.NewClustersCmd())
	rootCmd.AddCommand(commands.NewHostsCmd())
	rootCmd.AddCommand(commands.NewServicesCmd())
	rootCmd.AddCommand(commands.NewAlertsCmd())
	rootCmd.AddCommand(commands.NewMetricsCmd())
	rootCmd.AddCommand(commands.NewLogsCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
