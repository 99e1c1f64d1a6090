package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clusterview-dev/clusterview/internal/api"
)

// NewServicesCmd creates the services command
func NewServicesCmd() *cobra.Command {
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "services [id]",
		Short: "List services or show one service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runServices(id, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Results per page")
	return cmd
}

func runServices(id string, opts api.ListOptions) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if id != "" {
		if err := app.requireView("/services/" + id); err != nil {
			return err
		}
		service, err := app.Client.GetService(cmdContext(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Name:    %s\n", service.Name)
		fmt.Printf("Type:    %s\n", service.Type)
		fmt.Printf("Version: %s\n", service.Version)
		fmt.Printf("Status:  %s\n", service.Status)
		fmt.Printf("Cluster: %s\n", service.ClusterID)
		return nil
	}

	if err := app.requireView("/services"); err != nil {
		return err
	}
	services, total, err := app.Client.ListServices(cmdContext(), opts)
	if err != nil {
		return err
	}

	if len(services) == 0 {
		fmt.Println("No services found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tVERSION\tSTATUS")
	for _, service := range services {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			service.ID, service.Name, service.Type, service.Version, service.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if total > len(services) {
		fmt.Printf("Showing %d of %d services\n", len(services), total)
	}
	return nil
}
