// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package properties

import (
	"os"
	"sync"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// MemStore is an in-memory Store. It is safe for concurrent use,
// matching the concurrency guarantees of the real broker. Unlike the
// real broker it retains control-key writes, which makes issued
// commands visible to tests and to snapshot files.
type MemStore struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{props: make(map[string]string)}
}

// NewMemStoreFromMap returns a MemStore seeded with the given
// properties. The initial values bypass validation; they stand for
// whatever state the broker is already in.
func NewMemStoreFromMap(initial map[string]string) *MemStore {
	props := make(map[string]string, len(initial))
	for key, value := range initial {
		props[key] = value
	}
	return &MemStore{props: props}
}

// Get implements Store.
func (s *MemStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props[key]
}

// Set implements Store.
func (s *MemStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return errors.Trace(err)
	}
	if len(value) > MaxValueLength {
		return errors.NotValidf("property value for %q longer than %d bytes", key, MaxValueLength)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[key] = value
	return nil
}

// Snapshot returns a copy of the current properties.
func (s *MemStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props := make(map[string]string, len(s.props))
	for key, value := range s.props {
		props[key] = value
	}
	return props
}

// Load reads a property snapshot from a YAML file. A missing file is
// not an error: the broker reads unset properties as empty, so a
// missing snapshot is simply an empty store.
func Load(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewMemStore(), nil
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	var props map[string]string
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, errors.Annotatef(err, "parsing property snapshot %q", path)
	}
	return NewMemStoreFromMap(props), nil
}

// Write persists the current properties as a YAML snapshot.
func (s *MemStore) Write(path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Trace(err)
	}
	return nil
}
