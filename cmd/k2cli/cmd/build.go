package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataflowlabs/k2graph/partition"
)

var (
	buildInput  string
	buildOutput string
	buildK      int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an edge partition from a CSV edge list",
	RunE: func(c *cobra.Command, args []string) error {
		k := buildK
		if k == 0 {
			k = cfg.Graph.K
		}

		edges, err := readEdgesCSV(buildInput)
		if err != nil {
			return err
		}
		logger.Debug("read %d edges from %s", len(edges), buildInput)

		p, err := partition.Build[struct{}, int64](k, edges)
		if err != nil {
			return fmt.Errorf("build partition: %w", err)
		}
		logger.Info("built partition: size=%d k=%d srcIndex=%d dstIndex=%d", p.Size(), p.K(), p.SrcIndexSize(), p.DstIndexSize())

		if err := writeEdgeFile(buildOutput, k, edges); err != nil {
			return err
		}
		logger.Info("wrote %s", buildOutput)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "input CSV file (src,dst[,attr])")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output edge-partition file")
	buildCmd.Flags().IntVarP(&buildK, "k", "k", 0, "K²-tree branching factor (default: config graph.k)")
	buildCmd.MarkFlagRequired("input")
	buildCmd.MarkFlagRequired("output")
}
