package config

import (
	_ "embed"
)

//go:embed defaults/fillets.yaml
var defaultFilletsYAML []byte

// DefaultFilletsConfig returns the default configuration.
func DefaultFilletsConfig() FilletsConfig {
	return FilletsConfig{
		Rules: RulesConfig{},
		Controls: ControlsConfig{
			TickRate:   15,
			MovePhases: 1,
		},
		Display: DisplayConfig{
			CellWidth: 2,
			ShowHints: true,
			Theme:     "default",
		},
		Levels: LevelsConfig{
			Pack: "builtin",
		},
		Storage: StorageConfig{
			SaveReplays: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFilletsYAML
}
