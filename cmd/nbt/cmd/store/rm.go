package store

import (
	"fmt"

	"nbtkit/cli"
	"nbtkit/store"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <names...>",
	Short: "Removes trees from the store.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := cli.OpenStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		for _, name := range args {
			if err := store.DeleteTree(db, name); err != nil {
				return err
			}
			fmt.Printf("Removed %s.\n", name)
		}
		return nil
	},
}

func init() {
	cmd.AddCommand(rmCmd)
}
