// ABOUTME: Version command for the trainweek CLI.
// ABOUTME: Prints the build version without touching storage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the trainweek version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trainweek %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
