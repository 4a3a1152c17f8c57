package engine

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend selectable by name. Backend packages call it
// from init, so importing a backend is what enables it. Registering two
// factories under one name is a wiring bug and panics.
func Register(f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := f.Name()
	if name == "" {
		panic("engine: Register with empty backend name")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("engine: Register called twice for backend %q", name))
	}
	registry[name] = f
}

// Get returns the factory registered under name.
func Get(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("backend %q is not registered (have %v): %w", name, backendNames(), ErrNotReady)
	}
	return f, nil
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return backendNames()
}

func backendNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
