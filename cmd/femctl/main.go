// Package main is femctl, a developer CLI for inspecting ADOxml exports
// offline: parse a file to JSON, list raw attribute-name frequencies, or
// run cross-model reference queries.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "femctl",
		Short:         "Inspect ADOxml architecture-model exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newParseCmd(),
		newCensusCmd(),
		newRefsCmd(),
	)

	return rootCmd
}
