package main

import "github.com/spf13/cobra"

// Set with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("folio", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
