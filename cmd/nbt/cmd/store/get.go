package store

import (
	"os"

	"nbtkit/cli"
	"nbtkit/nbt"
	"nbtkit/store"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <name> <out?>",
	Short: "Writes a stored tree to a file in the configured byte order, or prints it when no file is given.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		codec := cfg.NewCodec()
		db, err := cli.OpenStoreReadOnly(cmd, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if len(args) == 2 {
			return cli.ExportTree(db, codec, args[0], args[1])
		}

		tag, err := store.GetTree(db, codec, args[0])
		if err != nil {
			return err
		}
		defer nbt.Delete(tag)
		format, err := cmd.Flags().GetString(cli.FlagFormat)
		if err != nil {
			return err
		}
		return cli.RenderTree(os.Stdout, tag, format)
	},
}

func init() {
	cmd.AddCommand(getCmd)
}
