package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of rblx2rojo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rblx2rojo %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
