package config

import "fmt"

// RulesPreset represents a named set of rule overrides.
type RulesPreset string

const (
	PresetClassic RulesPreset = "classic" // fish swim, only loads and falling items kill
	PresetGravity RulesPreset = "gravity" // fish sink and survive short falls
	PresetHard    RulesPreset = "hard"    // fish sink and die landing after one cell
)

// Presets lists the known presets in display order.
func Presets() []RulesPreset {
	return []RulesPreset{PresetClassic, PresetGravity, PresetHard}
}

// ParsePreset resolves a preset name.
func ParsePreset(name string) (RulesPreset, error) {
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown rules preset %q", name)
}

// ApplyPreset modifies the config rules based on a preset.
func ApplyPreset(cfg *FilletsConfig, preset RulesPreset) {
	switch preset {
	case PresetGravity:
		cfg.Rules.LivingFall = true
		cfg.Rules.FallDeathDistance = 3
	case PresetHard:
		cfg.Rules.LivingFall = true
		cfg.Rules.FallDeathDistance = 1
	default:
		cfg.Rules.LivingFall = false
		cfg.Rules.FallDeathDistance = 0
	}
}
