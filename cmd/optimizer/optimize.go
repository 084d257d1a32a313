package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
	"github.com/KirkDiggler/wynn-optimizer/internal/orchestrators/optimizer"
)

type runFlags struct {
	runID   string
	weapon  string
	sweep   []string
	all     bool
	resume  bool
	reuse   bool
	top     int
	output  string
	backend string
}

var optimizeFlags runFlags

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the best builds of the configured profile",
	Long: `Runs the constraint search for the configured weapon, logs every candidate
within the shrink factor of the optimum and prints the ranked builds.

Interrupting the run (Ctrl+C or optimizer.timeout) still ranks and prints
the candidates found so far.`,
	RunE: runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeFlags.runID, "run-id", "", "results log to write, generated when empty")
	f.StringVar(&optimizeFlags.weapon, "weapon", "", "weapon name, overrides optimizer.weapon")
	f.StringSliceVar(&optimizeFlags.sweep, "sweep", nil, "optimize each of these weapons and merge the rankings")
	f.BoolVar(&optimizeFlags.all, "all-weapons", false, "sweep every weapon in the catalog")
	f.BoolVar(&optimizeFlags.resume, "resume", false, "continue the enumeration of an existing run, requires --run-id")
	f.BoolVar(&optimizeFlags.reuse, "reuse", false, "rank the existing log when another process holds the run")
	f.StringVar(&optimizeFlags.backend, "backend", "", "solver backend, overrides optimizer.backend")
	addOutputFlags(optimizeCmd, &optimizeFlags)
}

func addOutputFlags(cmd *cobra.Command, rf *runFlags) {
	cmd.Flags().IntVar(&rf.top, "top", 20, "number of builds to print, 0 for all")
	cmd.Flags().StringVarP(&rf.output, "output", "o", FormatText, "output format: text, json or yaml")
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	rf := optimizeFlags
	if err := validateFormat(rf.output); err != nil {
		return err
	}
	if rf.resume && rf.runID == "" {
		return errors.InvalidArgument("--resume requires --run-id")
	}
	if rf.resume && (len(rf.sweep) > 0 || rf.all) {
		return errors.InvalidArgument("--resume cannot be combined with a sweep")
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
	if rf.backend != "" {
		profile.Backend = rf.backend
	}

	ctx, cancel := runContext(a)
	defer cancel()

	var rep *reportView
	switch {
	case len(rf.sweep) > 0 || rf.all:
		var weapons []string
		if !rf.all {
			weapons = rf.sweep
		}
		out, err := a.orch.Sweep(ctx, &optimizer.SweepInput{Weapons: weapons, Profile: profile})
		if err != nil {
			return err
		}
		rep = newReport(out.Ranking, rf.top)
		rep.Interrupted = out.Interrupted
		if len(out.Failed) > 0 {
			rep.Failed = make(map[string]string, len(out.Failed))
			for name, ferr := range out.Failed {
				rep.Failed[name] = ferr.Error()
			}
		}
		if out.Ranking != nil {
			rep.Candidates = out.Ranking.Stats.Seen
		}

	case rf.resume:
		out, err := a.orch.Resume(ctx, &optimizer.ResumeInput{RunID: rf.runID, Profile: profile})
		if err != nil {
			return err
		}
		a.logger.Info("resumed run",
			zap.String("run_id", out.RunID),
			zap.Int("existing", out.Existing),
			zap.Int("skipped", out.Skipped))
		rep = newReport(out.Ranking, rf.top)
		rep.RunID = out.RunID
		if out.Enumeration != nil {
			rep.Candidates = out.Existing + out.Enumeration.Count - out.Skipped
			rep.Interrupted = out.Enumeration.Interrupted
			rep.Reason = out.Enumeration.Reason
		}

	default:
		out, err := a.orch.Optimize(ctx, &optimizer.OptimizeInput{
			RunID:           rf.runID,
			Profile:         profile,
			ReuseInProgress: rf.reuse,
		})
		if err != nil {
			return err
		}
		rep = newReport(out.Ranking, rf.top)
		rep.RunID = out.RunID
		rep.Reused = out.Reused
		if out.Enumeration != nil {
			rep.Candidates = out.Enumeration.Count
			rep.Interrupted = out.Enumeration.Interrupted
			rep.Reason = out.Enumeration.Reason
		} else if out.Ranking != nil {
			rep.Candidates = out.Ranking.Stats.Seen
		}
	}

	return writeReport(os.Stdout, rf.output, rep)
}

// runContext combines signal cancellation with the configured run timeout
func runContext(a *app) (context.Context, context.CancelFunc) {
	ctx, cancel := signalContext(a.logger)
	if a.cfg.Optimizer.Timeout <= 0 {
		return ctx, cancel
	}
	tctx, tcancel := context.WithTimeout(ctx, a.cfg.Optimizer.Timeout)
	return tctx, func() {
		tcancel()
		cancel()
	}
}
