package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
	"github.com/vovakirdan/tui-fillets/internal/replay"
)

var (
	flagVerifyAll       bool
	flagVerifyReference bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay stored solutions",
	Long: `Replays the best stored solution of every level in the selected pack
and reports the ones that no longer solve their level, for example after a
level file or the rules changed.

Examples:
  fillets verify                 # Best stored solution per level
  fillets verify --all           # Every stored solution
  fillets verify --reference     # Solutions shipped in the level files
  fillets verify --rules gravity`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&flagVerifyAll, "all", false, "Verify every stored solution, not only the best")
	verifyCmd.Flags().BoolVar(&flagVerifyReference, "reference", false, "Verify the solutions stored in the level files")
}

// verifyJob is one move log to check against a level.
type verifyJob struct {
	level  levels.Level
	moves  string
	source string
}

func runVerify(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	jobs, err := collectJobs(lvls)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("Nothing to verify.")
		return nil
	}

	bar := pb.StartNew(len(jobs))
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		bar.SetWriter(io.Discard)
	}

	var failures []string
	for _, job := range jobs {
		res, err := replay.Verify(job.level, job.moves, roomRules(job.level))
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s (%s): %v", job.level.ID, job.source, err))
		case !res.Complete:
			failures = append(failures, fmt.Sprintf("%s (%s): level not solved after %d moves", job.level.ID, job.source, res.Moves))
		}
		bar.Increment()
	}
	bar.Finish()

	fmt.Printf("\nVerified %d move logs, %d failed.\n", len(jobs), len(failures))
	for _, f := range failures {
		fmt.Println("  " + f)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d move logs failed", len(failures))
	}
	return nil
}

// collectJobs gathers the move logs to verify.
func collectJobs(lvls []levels.Level) ([]verifyJob, error) {
	var jobs []verifyJob

	if flagVerifyReference {
		for _, lvl := range lvls {
			if sol := lvl.Solution(); sol != "" {
				jobs = append(jobs, verifyJob{level: lvl, moves: sol, source: "reference"})
			}
		}
		return jobs, nil
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	for _, lvl := range lvls {
		if !flagVerifyAll {
			best, err := store.BestSolution(lvl.ID)
			if err != nil {
				continue
			}
			jobs = append(jobs, verifyJob{level: lvl, moves: best.Moves, source: fmt.Sprintf("solution #%d", best.ID)})
			continue
		}

		solutions, err := store.Solutions(lvl.ID, 1000)
		if err != nil {
			return nil, err
		}
		for _, s := range solutions {
			jobs = append(jobs, verifyJob{level: lvl, moves: s.Moves, source: fmt.Sprintf("solution #%d", s.ID)})
		}
	}
	return jobs, nil
}
