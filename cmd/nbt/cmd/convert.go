package cmd

import (
	"context"
	"fmt"
	"os"

	"nbtkit/cli"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	ToBigEndianFlag    = "to-big-endian"
	ToLittleEndianFlag = "to-little-endian"
	OutDirFlag         = "out-dir"
)

var (
	toBigEndian    bool
	toLittleEndian bool
	outDir         string
)

var convertCmd = &cobra.Command{
	Use:   "convert <files...>",
	Short: "Re-encodes files in the other byte order.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if toBigEndian == toLittleEndian {
			return errors.Errorf("exactly one of --%s or --%s is required", ToBigEndianFlag, ToLittleEndianFlag)
		}
		for _, p := range args {
			if p == cli.StdinPath {
				return errors.New("convert does not read from stdin")
			}
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return errors.Wrap(err, "error creating output directory")
			}
		}

		from, err := cli.NewCodec(cmd)
		if err != nil {
			return err
		}
		to := *from
		to.BigEndian = toBigEndian

		jobs := cli.ConvertJobs(args, outDir)
		if err := cli.ConvertFiles(context.Background(), from, &to, jobs); err != nil {
			return err
		}
		fmt.Printf("Converted %d file(s).\n", len(jobs))
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&toBigEndian, ToBigEndianFlag, false, "Write big-endian output")
	convertCmd.Flags().BoolVar(&toLittleEndian, ToLittleEndianFlag, false, "Write little-endian output")
	convertCmd.Flags().StringVar(&outDir, OutDirFlag, "", "Directory to write converted files to; files are rewritten in place when empty")
	rootCmd.AddCommand(convertCmd)
}
