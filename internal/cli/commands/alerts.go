package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewAlertsCmd creates the alerts command
func NewAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List fired alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.requireView("/alerts"); err != nil {
				return err
			}

			alerts, err := app.Client.Alerts(cmdContext())
			if err != nil {
				return err
			}

			if len(alerts) == 0 {
				fmt.Println("No alerts. All quiet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEVERITY\tRULE\tSTATUS\tFIRED\tMESSAGE")
			for _, alert := range alerts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					alert.Severity, alert.RuleName, alert.Status,
					alert.FiredAt.Format("15:04:05"), alert.Message)
			}
			return w.Flush()
		},
	}
}
