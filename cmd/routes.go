package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jon4hz/crudnote/internal/router"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tVIEW\tAUTH") //nolint:errcheck
		for _, r := range router.DefaultTable().Routes() {
			auth := "-"
			if r.RequiresAuth {
				auth = "required"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.View, auth) //nolint:errcheck
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
