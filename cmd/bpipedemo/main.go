package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bpipedemo",
		Short: "Demo application of the bpipe framework",
		Long: `bpipedemo serves a small application built on bpipe.

Configuration is read from the environment, see the bapp package for the
BP_* variables. DEMO_PEOPLE_TABLE names the DynamoDB table with people and
DEMO_USERS_SECRET the Secrets Manager secret with the users.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
