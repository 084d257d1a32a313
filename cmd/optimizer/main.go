// Package main is the entry point for the build optimizer CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "wynn-optimizer",
	Short: "Wynncraft gear build optimizer",
	Long: `wynn-optimizer searches the item database for the gear sets that maximise a
build score under skill-point and identification constraints, logs every
near-optimal candidate and ranks them with the exact skill-point allocator.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, overrides metrics.addr")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(catalogCmd)
}
