package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dataflowlabs/k2graph/partition"
)

var (
	aggInput      string
	aggMode       string
	aggDirection  string
	aggActiveness string
	aggActivePath string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Run a Pregel-style message aggregation pass over a partition",
	RunE: func(c *cobra.Command, args []string) error {
		k, edges, err := readEdgeFile(aggInput)
		if err != nil {
			return err
		}

		p, err := partition.Build[struct{}, int64](k, edges)
		if err != nil {
			return fmt.Errorf("rebuild partition: %w", err)
		}

		if aggActivePath != "" {
			ids, err := readActiveIds(aggActivePath)
			if err != nil {
				return err
			}
			p = p.WithActiveSet(func(yield func(partition.VertexId) bool) {
				for _, id := range ids {
					if !yield(id) {
						return
					}
				}
			})
			logger.Debug("loaded %d active vertex ids from %s", len(ids), aggActivePath)
		}

		activeness, err := parseActiveness(aggActiveness)
		if err != nil {
			return err
		}

		sendMsg := func(ctx *partition.EdgeContext[struct{}, int64, int64]) {
			switch aggDirection {
			case "src":
				ctx.SendToSrc(ctx.Triplet.EdgeAttr)
			default:
				ctx.SendToDst(ctx.Triplet.EdgeAttr)
			}
		}
		sumMerge := func(a, b int64) int64 { return a + b }

		var results func(yield func(partition.VertexId, int64) bool)
		switch aggMode {
		case "src":
			results = partition.AggregateMessagesSrcIndexScan[struct{}, int64, int64](p, sendMsg, sumMerge, false, false, activeness)
		case "dst":
			results = partition.AggregateMessagesDstIndexScan[struct{}, int64, int64](p, sendMsg, sumMerge, false, false, activeness)
		default:
			results = partition.AggregateMessagesEdgeScan[struct{}, int64, int64](p, sendMsg, sumMerge, false, false, activeness)
		}

		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		for id, v := range results {
			if err := w.Write([]string{strconv.FormatInt(id, 10), strconv.FormatInt(v, 10)}); err != nil {
				return err
			}
		}
		return nil
	},
}

func parseActiveness(s string) (partition.Activeness, error) {
	switch s {
	case "neither", "":
		return partition.ActivenessNeither, nil
	case "src":
		return partition.ActivenessSrcOnly, nil
	case "dst":
		return partition.ActivenessDstOnly, nil
	case "both":
		return partition.ActivenessBoth, nil
	case "either":
		return partition.ActivenessEither, nil
	default:
		return 0, fmt.Errorf("unknown activeness %q (want neither, src, dst, both, either)", s)
	}
}

func init() {
	aggregateCmd.Flags().StringVarP(&aggInput, "input", "i", "", "edge-partition file to aggregate over")
	aggregateCmd.Flags().StringVar(&aggMode, "mode", "edge", "scan strategy: edge, src, dst")
	aggregateCmd.Flags().StringVar(&aggDirection, "dir", "dst", "message direction: src, dst")
	aggregateCmd.Flags().StringVar(&aggActiveness, "activeness", "neither", "activeness predicate: neither, src, dst, both, either")
	aggregateCmd.Flags().StringVar(&aggActivePath, "active", "", "file of active vertex ids, one per line")
	aggregateCmd.MarkFlagRequired("input")
}
