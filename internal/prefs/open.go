package prefs

import "fmt"

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Open opens the store for the named backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendYAML:
		return OpenYAML(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown preferences backend: %s", backend)
	}
}
