// Package registry maps names to next-piece sources.
// Sources register themselves in init() functions, so the CLI can pick one by
// name without knowing the concrete types.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// ErrUnknown is returned by Create for a name nobody registered.
var ErrUnknown = errors.New("registry: unknown randomizer")

// Factory builds a source from a seed. Equal seeds must yield equal
// sequences.
type Factory func(seed int64) engine.Randomizer

// Info describes a registered source.
type Info struct {
	Name  string
	Title string
}

// Registration only happens from init(), so lookups need no locking.
var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under name.
// Panics if the name is already taken.
func Register(name, title string, f Factory) {
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: randomizer %q already registered", name))
	}
	factories[name] = f
	titles[name] = title
}

// List returns all registered sources, sorted by name.
func List() []Info {
	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{Name: name, Title: titles[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create builds the named source seeded with seed.
func Create(name string, seed int64) (engine.Randomizer, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return f(seed), nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return f, nil
}

// Exists checks if a source with the given name is registered.
func Exists(name string) bool {
	_, ok := factories[name]
	return ok
}
