package store

import (
	"fmt"

	"nbtkit/cli"
	"nbtkit/nbt"
	"nbtkit/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const OverwriteFlag = "overwrite"

var overwrite bool

var putCmd = &cobra.Command{
	Use:   "put <file> <name?>",
	Short: "Decodes a file and saves it in the store. A random name is used when none is given.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		codec := cfg.NewCodec()
		tag, err := cli.DecodeFile(codec, args[0])
		if err != nil {
			return err
		}
		defer nbt.Delete(tag)

		name := store.NewTreeName()
		if len(args) == 2 {
			name = args[1]
		}

		db, err := cli.OpenStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		put := store.CreateTree
		if overwrite {
			put = store.PutTree
		}
		info, err := put(db, codec, name, tag)
		if errors.Is(err, store.ErrTreeExists) {
			return errors.Wrapf(err, "pass --%s to replace it", OverwriteFlag)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Stored %s (%s, %d bytes).\n", info.Name, info.RootType, info.Size)
		return nil
	},
}

func init() {
	putCmd.Flags().BoolVar(&overwrite, OverwriteFlag, false, "Replace an existing tree with the same name")
	cmd.AddCommand(putCmd)
}
