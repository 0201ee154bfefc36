package cmd

import (
	"fmt"
	"os"

	"nbtkit/cli"
	"nbtkit/cmd/nbt/cmd/store"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "nbt",
	Short:         "Inspect, convert and store binary tag trees.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.CalledAs() == "init" || cmd.CalledAs() == "version" {
			return nil
		}
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.SetupLogging(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.nbt", "Home directory for the tool's configuration and tree store.")
	rootCmd.PersistentFlags().Bool(cli.FlagBigEndian, true, "Use big-endian byte order.")
	rootCmd.PersistentFlags().String(cli.FlagFormat, cli.FormatText, "Output format (text, table or json).")
	rootCmd.PersistentFlags().String(cli.FlagLogLevel, "info", "Log level.")
	rootCmd.PersistentFlags().Int(cli.FlagMaxDepth, 512, "Maximum container nesting depth.")
	rootCmd.PersistentFlags().Bool(cli.FlagStrict, false, "Reject trailing bytes after the root tag.")
	store.AddCmd(rootCmd)
}

func getFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString(cli.FlagFormat)
	if err != nil {
		panic(err)
	}
	return format
}
