// Package config provides YAML-based configuration loading and rule
// presets for Fillets.
package config

import (
	fcore "github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
)

// FilletsConfig contains all configuration for the game.
type FilletsConfig struct {
	Rules    RulesConfig    `yaml:"rules"`
	Controls ControlsConfig `yaml:"controls"`
	Display  DisplayConfig  `yaml:"display"`
	Levels   LevelsConfig   `yaml:"levels"`
	Storage  StorageConfig  `yaml:"storage"`
}

// RulesConfig overrides the simulation rules of every level.
type RulesConfig struct {
	LivingFall        bool `yaml:"living_fall"`
	FallDeathDistance int  `yaml:"fall_death_distance"`
	MaxSettlePasses   int  `yaml:"max_settle_passes"`
}

// ControlsConfig defines input timing.
type ControlsConfig struct {
	TickRate   int `yaml:"tick_rate"`   // Rounds per second
	MovePhases int `yaml:"move_phases"` // Rounds input stays locked after a move
}

// DisplayConfig defines how rooms are drawn.
type DisplayConfig struct {
	CellWidth int    `yaml:"cell_width"`
	ShowHints bool   `yaml:"show_hints"`
	Theme     string `yaml:"theme"` // default or mono
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Pack string `yaml:"pack"`
	Dir  string `yaml:"dir"`
}

// StorageConfig defines where solutions and replays are kept.
type StorageConfig struct {
	DBPath      string `yaml:"db_path"` // Empty means ~/.fillets/solutions.db
	SaveReplays bool   `yaml:"save_replays"`
}

// Apply merges the configured rules over a level's own rules.
// Zero values keep the level's setting.
func (r RulesConfig) Apply(base fcore.Rules) fcore.Rules {
	if r.LivingFall {
		base.LivingFall = true
	}
	if r.FallDeathDistance > 0 {
		base.FallDeathDistance = r.FallDeathDistance
	}
	if r.MaxSettlePasses > 0 {
		base.MaxSettlePasses = r.MaxSettlePasses
	}
	return base
}

// Normalize replaces unusable values with defaults.
func (c *FilletsConfig) Normalize() {
	def := DefaultFilletsConfig()
	if c.Controls.TickRate <= 0 {
		c.Controls.TickRate = def.Controls.TickRate
	}
	if c.Controls.MovePhases < 0 {
		c.Controls.MovePhases = 0
	}
	if c.Display.CellWidth <= 0 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	if c.Display.Theme == "" {
		c.Display.Theme = def.Display.Theme
	}
	if c.Levels.Pack == "" {
		c.Levels.Pack = def.Levels.Pack
	}
	if c.Rules.FallDeathDistance < 0 {
		c.Rules.FallDeathDistance = 0
	}
}
