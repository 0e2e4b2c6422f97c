package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags at release build time.
var version = "devel"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
