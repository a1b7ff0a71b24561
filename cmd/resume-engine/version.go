package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of resume-engine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("resume-engine %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
