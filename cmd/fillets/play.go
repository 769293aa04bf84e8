package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fillets/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Pick a level or play one directly",
	Long: `Without an argument, opens the level picker. With a level ID, starts
that level directly.

Controls:
  Arrows/WASD   - Swim with the active fish
  Tab/Space     - Switch fish
  .             - Wait one move
  U/Backspace   - Undo the last move
  R             - Restart the level
  P             - Pause
  Esc/B         - Back to the level picker
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Solved levels are stored with their move log, and a replay file is written
to ~/.fillets/replays unless storage.save_replays is off.

Examples:
  fillets play
  fillets play 02-steel-door
  fillets play --rules gravity
  fillets play --pack local`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	playLog, closeLog := playLogger()
	defer closeLog()

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open solutions database, solutions will not be saved", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	env := tuiEnv(store, playLog)
	cfg := runtimeConfig()

	if len(args) == 0 {
		lvls, err := loadLevels()
		if err != nil {
			return err
		}
		return tui.RunSession(lvls, gameFactory(playLog), env, cfg)
	}

	lvl, err := findLevel(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'fillets list' to see available levels)", err)
	}
	game := gameFactory(playLog)(lvl)
	if game.Err() != nil {
		return fmt.Errorf("level %s: %w", lvl.ID, game.Err())
	}
	return tui.Run(game, env, cfg)
}
