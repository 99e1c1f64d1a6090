package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clusterview-dev/clusterview/internal/api"
)

// NewHostsCmd creates the hosts command
func NewHostsCmd() *cobra.Command {
	var opts api.ListOptions

	cmd := &cobra.Command{
		Use:   "hosts [id]",
		Short: "List hosts or show one host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runHosts(id, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Results per page")
	return cmd
}

func runHosts(id string, opts api.ListOptions) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if id != "" {
		if err := app.requireView("/hosts/" + id); err != nil {
			return err
		}
		host, err := app.Client.GetHost(cmdContext(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Hostname: %s\n", host.Hostname)
		fmt.Printf("IP:       %s\n", host.IP)
		fmt.Printf("Status:   %s\n", host.Status)
		fmt.Printf("CPU:      %.1f%%\n", host.CPUUsage)
		fmt.Printf("Memory:   %.1f%%\n", host.MemoryUsage)
		fmt.Printf("Disk:     %.1f%%\n", host.DiskUsage)
		fmt.Printf("Last seen: %s\n", host.LastSeenAt.Format("2006-01-02 15:04:05"))
		return nil
	}

	if err := app.requireView("/hosts"); err != nil {
		return err
	}
	hosts, total, err := app.Client.ListHosts(cmdContext(), opts)
	if err != nil {
		return err
	}

	if len(hosts) == 0 {
		fmt.Println("No hosts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHOSTNAME\tIP\tSTATUS\tCPU\tMEM\tDISK")
	for _, host := range hosts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\t%.1f%%\t%.1f%%\n",
			host.ID, host.Hostname, host.IP, host.Status,
			host.CPUUsage, host.MemoryUsage, host.DiskUsage)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if total > len(hosts) {
		fmt.Printf("Showing %d of %d hosts\n", len(hosts), total)
	}
	return nil
}
