package cmd

import (
	"fmt"

	"nbtkit/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.UserAgent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
