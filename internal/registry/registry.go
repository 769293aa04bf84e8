// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions or at startup, allowing
// the platform to discover levels without hardcoded dependencies.
package registry

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

// Opener returns the file system holding a pack's level files.
type Opener func() (fs.FS, error)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

var (
	openers = make(map[string]Opener)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a level pack to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, open Opener) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := openers[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	openers[id] = open
	titles[id] = title
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(openers))
	for id := range openers {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Open returns the level files of a pack.
// Returns an error if the pack ID is not registered.
func Open(id string) (fs.FS, error) {
	mu.RLock()
	open, ok := openers[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}
	return open()
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := openers[id]
	return ok
}
