package cmd

import (
	"os"

	"nbtkit/cli"
	"nbtkit/nbt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decodes a file and prints its tree. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := cli.NewCodec(cmd)
		if err != nil {
			return err
		}
		tag, err := cli.DecodeFile(codec, args[0])
		if err != nil {
			return err
		}
		defer nbt.Delete(tag)
		return cli.RenderTree(os.Stdout, tag, getFormat(cmd))
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
