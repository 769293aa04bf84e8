package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fillets/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and levels",
	Long: `Shows every registered level pack and the levels of the selected pack.
Levels with a stored solution are marked with their best move count.`,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	fmt.Println("Level packs:")
	for _, p := range registry.List() {
		marker := " "
		if p.ID == appCfg.Levels.Pack {
			marker = "*"
		}
		fmt.Printf(" %s %-10s  %s\n", marker, p.ID, p.Title)
	}
	fmt.Println()

	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	best := make(map[string]int)
	if store, err := openStore(); err == nil {
		if stats, err := store.SolvedLevels(); err == nil {
			for _, st := range stats {
				best[st.LevelID] = st.BestMoves
			}
		}
		store.Close()
	} else {
		logger.Warn("could not open solutions database", "err", err)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("Levels in %q:\n\n", appCfg.Levels.Pack)
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Best", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "----", "----")

	for _, l := range lvls {
		bestStr := "-"
		if n, ok := best[l.ID]; ok {
			bestStr = fmt.Sprintf("%d", n)
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, l.ID, size, bestStr, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'fillets play <id>' to play a level.")
	return nil
}
