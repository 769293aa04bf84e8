package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fillets/internal/platform/tui"
	"github.com/vovakirdan/tui-fillets/internal/replay"
)

var (
	flagSolutionsBoard  bool
	flagSolutionsExport string
	flagSolutionsLimit  int
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions [level]",
	Short: "Show stored solutions",
	Long: `Display stored solutions, shortest first. Without a level, shows a
summary of every solved level.

Examples:
  fillets solutions
  fillets solutions 01-first-swim
  fillets solutions 01-first-swim --export ./replays
  fillets solutions --board`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolutions,
}

func init() {
	solutionsCmd.Flags().BoolVar(&flagSolutionsBoard, "board", false, "Open the interactive solutions board")
	solutionsCmd.Flags().StringVar(&flagSolutionsExport, "export", "", "Write the best solution as a replay file into this directory")
	solutionsCmd.Flags().IntVar(&flagSolutionsLimit, "limit", 10, "Maximum number of solutions to show")
}

func runSolutions(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening solutions database: %w", err)
	}
	defer store.Close()

	if flagSolutionsBoard {
		lvls, err := loadLevels()
		if err != nil {
			return err
		}
		cfg := runtimeConfig()
		return tui.RunSolutions(lvls, tuiEnv(store, logger), cfg.ScreenW, cfg.ScreenH)
	}

	if len(args) == 0 {
		stats, err := store.SolvedLevels()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No solutions recorded yet.")
			fmt.Println()
			fmt.Println("Run 'fillets play' and solve a level!")
			return nil
		}

		fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "Level", "Solves", "Best", "Last solved")
		fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "-----", "------", "----", "-----------")
		for _, st := range stats {
			fmt.Printf("  %-20s  %-6d  %-6d  %s\n", st.LevelID, st.Solves, st.BestMoves, st.LastSolved.Format("2006-01-02 15:04"))
		}
		return nil
	}

	levelID := args[0]
	solutions, err := store.Solutions(levelID, flagSolutionsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Solutions - %s\n\n", levelID)
	if len(solutions) == 0 {
		fmt.Println("No solutions recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "Rank", "Moves", "Date", "Log")
	fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "----", "-----", "----", "---")
	for i, s := range solutions {
		fmt.Printf("  %-4d  %-6d  %-16s  %s\n", i+1, s.MoveCount, s.CreatedAt.Format("2006-01-02 15:04"), s.Moves)
	}

	if flagSolutionsExport != "" {
		best := solutions[0]
		rec := replay.NewRecord(levelID, best.Moves)
		path := filepath.Join(flagSolutionsExport, replay.FileName(rec))
		if err := replay.Write(path, rec); err != nil {
			return err
		}
		fmt.Printf("\nBest solution written to %s\n", path)
	}
	return nil
}
