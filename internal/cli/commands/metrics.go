package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewMetricsCmd creates the metrics command
func NewMetricsCmd() *cobra.Command {
	var hostID string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show recent metric samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireView("/monitor"); err != nil {
				return err
			}

			records, err := app.Client.Metrics(cmdContext(), hostID)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No metric samples found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOST\tMETRIC\tVALUE\tSAMPLED")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n",
					record.HostID, record.MetricName, record.Value,
					record.SampledAt.Format("15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&hostID, "host", "", "Filter by host id")
	return cmd
}
