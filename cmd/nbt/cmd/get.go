package cmd

import (
	"os"

	"nbtkit/cli"
	"nbtkit/nbt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Prints the node at a slash-separated path, e.g. Players/0/name.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := cli.NewCodec(cmd)
		if err != nil {
			return err
		}
		root, err := cli.DecodeFile(codec, args[0])
		if err != nil {
			return err
		}
		defer nbt.Delete(root)

		tag, err := root.Lookup(args[1])
		if err != nil {
			return errors.Wrapf(err, "error looking up %s", args[1])
		}
		return cli.RenderTree(os.Stdout, tag, getFormat(cmd))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
