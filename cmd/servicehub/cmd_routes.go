package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/servicehub/internal/kernel"
	"github.com/shashiranjanraj/servicehub/pkg/auth"
)

// servicehub route:list: print the route table without connecting to
// any backing store.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := auth.NewTokenService("route-list", 0)
		if err != nil {
			return err
		}
		k := kernel.NewHTTPKernel(kernel.Deps{Tokens: tokens})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
