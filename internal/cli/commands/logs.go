package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clusterview-dev/clusterview/internal/api"
)

// NewLogsCmd creates the logs command
func NewLogsCmd() *cobra.Command {
	var hostID string
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show collected log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireView("/logs"); err != nil {
				return err
			}

			entries, total, err := app.Client.QueryLogs(cmdContext(), hostID, opts)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No log entries found.")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("%s  %-5s  %s  %s: %s\n",
					entry.Timestamp.Format("2006-01-02 15:04:05"),
					entry.Level, entry.HostID, entry.Service, entry.Message)
			}
			if total > len(entries) {
				fmt.Printf("Showing %d of %d entries\n", len(entries), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hostID, "host", "", "Filter by host id")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Results per page")
	return cmd
}
