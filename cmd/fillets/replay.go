package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/replay"
)

var flagReplaySave bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Check a replay file and show the final room",
	Long: `Reads a replay file, replays its moves on a fresh room of the recorded
level and prints the final room.

Exits with an error when the move log cannot be replayed (an unknown or
blocked move, or a log that finishes while objects are still falling).

Examples:
  fillets replay ~/.fillets/replays/01-first-swim-20260101-120000.fmv.zst
  fillets replay solution.fmv.zst --save`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplaySave, "save", false, "Store the moves as a solution when they solve the level")
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Read(args[0])
	if err != nil {
		return err
	}

	lvl, err := findLevel(rec.LevelID)
	if err != nil {
		return err
	}

	res, err := replay.VerifyRecord(lvl, rec, roomRules(lvl))
	if err != nil {
		var le *core.LoadError
		if errors.As(err, &le) {
			fmt.Printf("Replay stops after %d moves:\n\n%s\n\n", res.Moves, res.Snapshot.Field)
		}
		return err
	}

	fmt.Printf("Level:   %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("Moves:   %d\n", res.Moves)
	fmt.Printf("Created: %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println(res.Snapshot.Field)
	fmt.Println()

	for _, m := range res.Snapshot.Models {
		if m.Death != core.DeathNone {
			fmt.Printf("Model %d (%s) died: %s\n", m.Index, m.Kind, m.Death)
		}
	}

	if !res.Complete {
		fmt.Println("Result: not solved")
		return nil
	}
	fmt.Println("Result: solved")

	if flagReplaySave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveSolution(lvl.ID, rec.Moves); err != nil {
			return err
		}
		fmt.Println("Solution stored.")
	}
	return nil
}
