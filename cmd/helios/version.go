package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helioscommand/helios"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of helios",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("helios version %s\n", strings.TrimSpace(helios.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
