package resolver

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/depstack/resolvekit/pkg/repo"
	"github.com/depstack/resolvekit/pkg/settings"
)

// Deps are the collaborators every resolver type is constructed with.
type Deps struct {
	Store  settings.Store
	Finder repo.Finder
	Logger *log.Logger
}

// Factory constructs a resolver of a particular type.
type Factory func(d Deps) Resolver

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a resolver type available for lookup by name. Resolver
// packages call this from init; a duplicate name overwrites the earlier
// registration.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Lookup returns the factory for a resolver type name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Types returns the registered resolver type names, sorted.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
