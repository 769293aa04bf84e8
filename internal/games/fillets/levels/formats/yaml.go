// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned for a level file that parses but cannot
// describe a room.
var ErrInvalidLevel = errors.New("invalid level")

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Rules    *YAMLRules        `yaml:"rules,omitempty"`
	Models   []YAMLModel       `yaml:"models"`
	Exits    []YAMLCell        `yaml:"exits"`
	Units    []YAMLUnit        `yaml:"units"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents room dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLRules overrides the default simulation rules for one level.
type YAMLRules struct {
	LivingFall        bool `yaml:"living_fall"`
	FallDeathDistance int  `yaml:"fall_death_distance"`
}

// YAMLModel represents a single model in YAML format.
type YAMLModel struct {
	Kind  string `yaml:"kind"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Shape string `yaml:"shape,omitempty"` // "X" mask rows, defaults to one cell
	Goal  bool   `yaml:"goal,omitempty"`
}

// YAMLCell is a single cell address.
type YAMLCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLUnit binds a model to its move symbols.
type YAMLUnit struct {
	Model   int    `yaml:"model"`
	Symbols string `yaml:"symbols,omitempty"`
}

// Model is a parsed model definition.
type Model struct {
	Kind  core.Kind
	Loc   core.Coord
	Shape core.Shape
	Goal  bool
}

// Unit is a parsed unit definition.
type Unit struct {
	Model   int
	Symbols string
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Rules    core.Rules
	Models   []Model
	Exits    []core.Coord
	Units    []Unit
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if yl.Size.W <= 0 || yl.Size.H <= 0 {
		return Level{}, fmt.Errorf("%w: %s: bad size %dx%d", ErrInvalidLevel, yl.ID, yl.Size.W, yl.Size.H)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Rules:    core.DefaultRules(),
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	if yl.Rules != nil {
		level.Rules.LivingFall = yl.Rules.LivingFall
		level.Rules.FallDeathDistance = yl.Rules.FallDeathDistance
	}

	for i, m := range yl.Models {
		kind, err := core.ParseKind(m.Kind)
		if err != nil {
			return Level{}, fmt.Errorf("%s: model %d: %w", yl.ID, i, err)
		}
		shape := core.UnitShape()
		if strings.TrimSpace(m.Shape) != "" {
			shape, err = core.ParseShape(m.Shape)
			if err != nil {
				return Level{}, fmt.Errorf("%s: model %d: %w", yl.ID, i, err)
			}
		}
		level.Models = append(level.Models, Model{
			Kind:  kind,
			Loc:   core.C(m.X, m.Y),
			Shape: shape,
			Goal:  m.Goal,
		})
	}

	for _, e := range yl.Exits {
		level.Exits = append(level.Exits, core.C(e.X, e.Y))
	}

	for _, u := range yl.Units {
		if u.Model < 0 || u.Model >= len(level.Models) {
			return Level{}, fmt.Errorf("%w: %s: unit model %d out of range", ErrInvalidLevel, yl.ID, u.Model)
		}
		level.Units = append(level.Units, Unit{Model: u.Model, Symbols: u.Symbols})
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
