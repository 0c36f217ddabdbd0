package source

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type Factory func() Source

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a board under its canonical name. Boards register
// themselves from init so importing the package is enough.
func Register(name string, f Factory) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
}

func New(name string) (Source, error) {
	mu.RLock()
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown source %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
