// Package levels provides level loading functionality for Fillets.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels/formats"
	"github.com/vovakirdan/tui-fillets/internal/registry"
)

// BuiltinPack is the registry ID of the levels shipped with the binary.
const BuiltinPack = "builtin"

//go:embed data/*.yaml
var builtinFS embed.FS

func init() {
	registry.Register(BuiltinPack, "Built-in levels", Builtin)
}

// Builtin returns the embedded level files.
func Builtin() (fs.FS, error) {
	return fs.Sub(builtinFS, "data")
}

// Dir returns an opener for level files in a directory on disk.
func Dir(root string) registry.Opener {
	return func() (fs.FS, error) {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("level directory %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("level directory %s: not a directory", root)
		}
		return os.DirFS(root), nil
	}
}

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Rules    core.Rules
	Models   []formats.Model
	Exits    []core.Coord
	Units    []formats.Unit
	Metadata map[string]string
	FilePath string
}

// Solution returns the reference move log stored with the level, if any.
func (l *Level) Solution() string {
	return l.Metadata["solution"]
}

// Build constructs a fresh room for the level.
// Options are applied after the level's own rules.
func (l *Level) Build(opts ...core.Option) (*core.Room, error) {
	all := append([]core.Option{core.WithRules(l.Rules)}, opts...)
	room := core.NewRoom(l.Width, l.Height, all...)

	for i, m := range l.Models {
		c, err := core.NewModel(m.Kind, m.Loc, m.Shape)
		if err != nil {
			return nil, fmt.Errorf("level %s: model %d: %w", l.ID, i, err)
		}
		c.SetGoal(m.Goal)
		if _, err := room.AddModel(c); err != nil {
			return nil, fmt.Errorf("level %s: model %d: %w", l.ID, i, err)
		}
	}
	for _, e := range l.Exits {
		room.SetExit(e.X, e.Y)
	}
	for _, u := range l.Units {
		if err := room.AddUnit(u.Model, u.Symbols); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	return room, nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a level loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root)}
}

// NewFSLoader creates a level loader over any file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// NewPackLoader creates a level loader for a registered pack.
func NewPackLoader(pack string) (*Loader, error) {
	fsys, err := registry.Open(pack)
	if err != nil {
		return nil, err
	}
	return NewFSLoader(fsys), nil
}

// LoadAll recursively scans and loads all level files.
// Files that do not parse are skipped. Returns levels sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking levels: %w", err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Rules:    parsed.Rules,
		Models:   parsed.Models,
		Exits:    parsed.Exits,
		Units:    parsed.Units,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
