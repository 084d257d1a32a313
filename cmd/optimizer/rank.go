package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/orchestrators/optimizer"
)

var rankFlags runFlags

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the logged candidates of a run without searching",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rf := rankFlags
		if rf.runID == "" {
			return errors.InvalidArgument("--run-id is required")
		}
		if err := validateFormat(rf.output); err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		profile := a.cfg.Optimizer.Profile()
		if rf.weapon != "" {
			profile.Weapon = rf.weapon
		}

		ctx, cancel := signalContext(a.logger)
		defer cancel()

		out, err := a.orch.Rank(ctx, &optimizer.RankInput{RunID: rf.runID, Profile: profile})
		if err != nil {
			return err
		}
		rep := newReport(out.Ranking, rf.top)
		rep.RunID = rf.runID
		rep.Candidates = out.Ranking.Stats.Seen
		return writeReport(os.Stdout, rf.output, rep)
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankFlags.runID, "run-id", "", "results log to rank")
	rankCmd.Flags().StringVar(&rankFlags.weapon, "weapon", "", "weapon the run was made for, overrides optimizer.weapon")
	addOutputFlags(rankCmd, &rankFlags)
}
