// fillets plays Fish Fillets style puzzle rooms in the terminal.
//
// Usage:
//
//	fillets list                 - List level packs and levels
//	fillets play [level]         - Pick a level, or play one directly
//	fillets replay <file>        - Check a replay file and show the final room
//	fillets verify               - Replay stored solutions
//	fillets solutions [level]    - Show stored solutions
//	fillets serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.fillets/configs, ./configs)
//	--rules <preset>    - Rules preset: classic, gravity, hard
//	--pack <id>         - Level pack (default from config)
//	--db <path>         - Solutions database (default: ~/.fillets/solutions.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagRules    string
	flagPack     string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fillets",
	Short: "Fillets - push, drop and swim out of puzzle rooms",
	Long: `Fillets is a terminal puzzle game. Two fish push objects around a
room under gravity until every fish has swum out through an exit.

Available commands:
  list       - Show level packs and levels
  play       - Pick a level or play one directly
  replay     - Check a replay file
  verify     - Replay every stored solution
  solutions  - Show stored solutions
  serve      - Start SSH server for remote play

Examples:
  fillets list
  fillets play 01-first-swim
  fillets play --rules gravity
  fillets verify --reference
  fillets serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Rules preset: classic, gravity, hard")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", "", "Level pack ID (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to solutions database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(solutionsCmd)
	rootCmd.AddCommand(serveCmd)
}
