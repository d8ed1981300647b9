package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/internal/demo"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the app",
		Long: `List the routes of the app in the order they are matched.

Examples:
  bpipedemo routes
  bpipedemo routes --method POST`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := bpipe.NewBuilder()
			demo.Routes(b)

			srv, err := b.Build()
			if err != nil {
				return err
			}

			routes := srv.Router().Routes()
			if method != "" {
				routes = lo.Filter(routes, func(r bpipe.RouteInfo, _ int) bool {
					return strings.EqualFold(r.Method, method)
				})
			}

			return printRoutes(cmd, routes)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "Only list routes for this method")

	return cmd
}

func printRoutes(cmd *cobra.Command, routes []bpipe.RouteInfo) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATTERN\tNAME\tSTAGES\tNOTE")

	for _, r := range routes {
		note := ""
		if r.Optional {
			note = "optional captures"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.Method, r.Pattern, r.Name, r.Stages, note)
	}

	return w.Flush()
}
