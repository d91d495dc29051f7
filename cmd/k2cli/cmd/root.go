package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dataflowlabs/k2graph/internal/config"
	"github.com/dataflowlabs/k2graph/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "k2cli",
	Short: "Build, scan and aggregate compressed edge partitions",
	Long: `k2cli is a command-line harness over the k2tree/partition packages.

It builds a K²-tree-backed edge partition from a CSV edge list, re-scans it
in tree order, and drives Pregel-style message aggregation over it.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := logging.ParseLevel(cfg.Log.Level)
		if verbose {
			level = logging.LevelDebug
		}
		logger = logging.NewStderrLogger(level)
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a k2cli config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(aggregateCmd)
}
