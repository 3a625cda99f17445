package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps preferences in a YAML file, rewritten on every change.
type YAMLStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenYAML opens the store at path. A missing file is an empty store.
func OpenYAML(path string) (*YAMLStore, error) {
	s := &YAMLStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Path returns the preferences file path.
func (s *YAMLStore) Path() string {
	return s.path
}

func (s *YAMLStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *YAMLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *YAMLStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

func (s *YAMLStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *YAMLStore) Close() error { return nil }

// flush writes the file through a temp file so readers never see a partial write.
func (s *YAMLStore) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
