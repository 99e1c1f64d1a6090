package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clusterview-dev/clusterview/internal/api"
)

// NewClustersCmd creates the clusters command
func NewClustersCmd() *cobra.Command {
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "clusters [id]",
		Short: "List clusters or show one cluster",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runClusters(id, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Results per page")
	return cmd
}

func runClusters(id string, opts api.ListOptions) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if id != "" {
		if err := app.requireView("/clusters/" + id); err != nil {
			return err
		}
		cluster, err := app.Client.GetCluster(cmdContext(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Name:        %s\n", cluster.Name)
		fmt.Printf("Status:      %s\n", cluster.Status)
		fmt.Printf("Hosts:       %d\n", cluster.HostCount)
		fmt.Printf("Description: %s\n", cluster.Description)
		fmt.Printf("Created:     %s\n", cluster.CreatedAt.Format("2006-01-02"))
		return nil
	}

	if err := app.requireView("/clusters"); err != nil {
		return err
	}
	clusters, total, err := app.Client.ListClusters(cmdContext(), opts)
	if err != nil {
		return err
	}

	if len(clusters) == 0 {
		fmt.Println("No clusters found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tHOSTS")
	for _, cluster := range clusters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", cluster.ID, cluster.Name, cluster.Status, cluster.HostCount)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if total > len(clusters) {
		fmt.Printf("Showing %d of %d clusters\n", len(clusters), total)
	}
	return nil
}
