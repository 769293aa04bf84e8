package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fillets/internal/config"
	"github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets"
	fcore "github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
	"github.com/vovakirdan/tui-fillets/internal/platform/tui"
	"github.com/vovakirdan/tui-fillets/internal/registry"
	"github.com/vovakirdan/tui-fillets/internal/storage"
)

// LocalPack is the registry ID of the level directory named in the config.
const LocalPack = "local"

var (
	appCfg config.FilletsConfig
	logger *log.Logger
)

// setup loads the configuration, applies the rules preset, builds the
// logger and registers the local level pack.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFillets(flagConfig)
	if err != nil {
		return err
	}

	if flagRules != "" {
		preset, err := config.ParsePreset(flagRules)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagPack != "" {
		cfg.Levels.Pack = flagPack
	}
	appCfg = cfg

	logger, err = newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		return err
	}

	if cfg.Levels.Dir != "" && !registry.Exists(LocalPack) {
		registry.Register(LocalPack, "Levels from "+cfg.Levels.Dir, levels.Dir(cfg.Levels.Dir))
		logger.Debug("registered local pack", "dir", cfg.Levels.Dir)
	}
	return nil
}

// loadLevels returns every level of the configured pack.
func loadLevels() ([]levels.Level, error) {
	loader, err := levels.NewPackLoader(appCfg.Levels.Pack)
	if err != nil {
		return nil, err
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("pack %q has no levels", appCfg.Levels.Pack)
	}
	return lvls, nil
}

// findLevel returns one level of the configured pack by ID.
func findLevel(id string) (levels.Level, error) {
	loader, err := levels.NewPackLoader(appCfg.Levels.Pack)
	if err != nil {
		return levels.Level{}, err
	}
	return loader.LoadByID(id)
}

// gameOptions turns the configuration into game options.
func gameOptions(l *log.Logger) []fillets.Option {
	return []fillets.Option{
		fillets.WithRules(appCfg.Rules.Apply),
		fillets.WithMovePhases(appCfg.Controls.MovePhases),
		fillets.WithCellWidth(appCfg.Display.CellWidth),
		fillets.WithHints(appCfg.Display.ShowHints),
		fillets.WithLogger(l),
	}
}

// gameFactory creates games with the configured options.
func gameFactory(l *log.Logger) tui.GameFactory {
	opts := gameOptions(l)
	return func(lvl levels.Level) *fillets.Game {
		return fillets.New(lvl, opts...)
	}
}

// roomRules returns the room option that applies the configured rules to
// a level, matching what the game uses.
func roomRules(lvl levels.Level) fcore.Option {
	return fcore.WithRules(appCfg.Rules.Apply(lvl.Rules))
}

// openStore opens the solutions database.
func openStore() (*storage.Store, error) {
	path, err := appCfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = appCfg.Controls.TickRate
	return cfg
}

// playLogger writes to a file while the TUI owns the terminal.
func playLogger() (*log.Logger, func()) {
	dir, err := config.DataDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "fillets.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	l, err := newLogger(f, flagLogLevel)
	if err != nil {
		l = log.New(f)
	}
	return l, func() { f.Close() }
}

// tuiEnv builds the environment shared by the TUI screens.
func tuiEnv(store *storage.Store, l *log.Logger) tui.Env {
	env := tui.Env{
		Store:  store,
		Logger: l,
		Theme:  tui.ThemeByName(appCfg.Display.Theme),
	}
	if appCfg.Storage.SaveReplays {
		if dir, err := config.ReplayDir(); err == nil {
			env.ReplayDir = dir
		}
	}
	return env
}
