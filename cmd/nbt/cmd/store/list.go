package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"nbtkit/cli"
	"nbtkit/store"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const NamesFlag = "names"

var namesOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored trees.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString(cli.FlagFormat)
		if err != nil {
			return err
		}
		db, err := cli.OpenStoreReadOnly(cmd, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if namesOnly {
			names, err := store.ListTreeNames(db)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		stream, err := store.StreamTreeInfo(db)
		if err != nil {
			return err
		}
		defer stream.Close()

		encoder := json.NewEncoder(os.Stdout)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{
			"Name",
			"Root Type",
			"Size",
			"Stored At",
		})
		for {
			info, err := stream.Next()
			if err != nil {
				return err
			}
			if info == nil {
				break
			}
			if format == cli.FormatJSON {
				if err := encoder.Encode(info); err != nil {
					return err
				}
				continue
			}
			table.Append([]string{
				info.Name,
				info.RootType.String(),
				strconv.Itoa(info.Size),
				info.StoredAt.Format(time.RFC3339),
			})
		}
		if format != cli.FormatJSON {
			table.Render()
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&namesOnly, NamesFlag, false, "Print only tree names, one per line")
	cmd.AddCommand(listCmd)
}
