package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dataflowlabs/k2graph/partition"
)

var scanInput string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Re-iterate a built edge partition in tree order",
	RunE: func(c *cobra.Command, args []string) error {
		k, edges, err := readEdgeFile(scanInput)
		if err != nil {
			return err
		}

		p, err := partition.Build[struct{}, int64](k, edges)
		if err != nil {
			return fmt.Errorf("rebuild partition: %w", err)
		}
		logger.Debug("rebuilt partition from %s: size=%d", scanInput, p.Size())

		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		for e := range p.Iterator() {
			row := []string{
				strconv.FormatInt(e.Src, 10),
				strconv.FormatInt(e.Dst, 10),
				strconv.FormatInt(e.Attr, 10),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanInput, "input", "i", "", "edge-partition file to scan")
	scanCmd.MarkFlagRequired("input")
}
