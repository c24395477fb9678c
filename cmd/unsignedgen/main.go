// Package main is the entry point for the unsignedgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unsignedgen",
	Short: "Unsigned certificate data generator",
	Long: `Assembles the unsigned payload of a verifiable digital certificate
from issuer and subject records, a JSON records payload, image references,
and free-form metadata. The output is handed to a downstream signing step;
this tool never signs anything.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
