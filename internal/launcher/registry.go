package launcher

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu        sync.RWMutex
	launchers = make(map[string]Launcher)
	aliases   = make(map[string]string)
)

// Register adds a launcher to the global registry.
func Register(l Launcher) {
	mu.Lock()
	defer mu.Unlock()
	launchers[l.Name()] = l
	for _, a := range l.Aliases() {
		aliases[a] = l.Name()
	}
}

// Get returns a launcher by name or alias.
func Get(name string) (Launcher, error) {
	mu.RLock()
	defer mu.RUnlock()
	if l, ok := launchers[name]; ok {
		return l, nil
	}
	if canonical, ok := aliases[name]; ok {
		return launchers[canonical], nil
	}
	return nil, fmt.Errorf("unknown integration: %s", name)
}

// List returns all registered launcher names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(launchers))
	for name := range launchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
