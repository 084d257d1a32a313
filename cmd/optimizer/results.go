package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/repositories/results"
)

var (
	resultsRunID string
	resultsFix   bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage logged candidate runs",
}

var resultsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of candidates logged for a run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, store, err := resultsApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		n, err := store.Count(cmd.Context(), resultsRunID)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the candidate log of a run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, store, err := resultsApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		return store.Delete(cmd.Context(), resultsRunID)
	},
}

var resultsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find run logs in redis holding records that no longer decode",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if a.redis == nil {
			return errors.FailedPrecondition("scan needs redis.addr to be configured")
		}

		report, err := results.ScanRedis(cmd.Context(), a.redis, resultsFix)
		if err != nil {
			return err
		}

		fmt.Printf("checked %d runs, %d corrupted\n", report.Runs, len(report.Corrupted))
		for _, c := range report.Corrupted {
			state := "left in place"
			if c.Fixed {
				state = "removed"
			}
			fmt.Printf("  %s: %d of %d records corrupt, %s\n", c.RunID, len(c.Corrupt), c.Records, state)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{resultsCountCmd, resultsDeleteCmd} {
		c.Flags().StringVar(&resultsRunID, "run-id", "", "run to operate on")
		_ = c.MarkFlagRequired("run-id")
	}
	resultsScanCmd.Flags().BoolVar(&resultsFix, "fix", false, "remove corrupt records")

	resultsCmd.AddCommand(resultsCountCmd)
	resultsCmd.AddCommand(resultsDeleteCmd)
	resultsCmd.AddCommand(resultsScanCmd)
	rootCmd.AddCommand(resultsCmd)
}

// resultsApp builds the app and the configured result log
func resultsApp(cmd *cobra.Command) (*app, results.Store, error) {
	a, err := newApp(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	store, err := a.resultStore()
	if err != nil {
		a.close()
		return nil, nil, err
	}
	return a, store, nil
}
