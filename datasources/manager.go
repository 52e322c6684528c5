/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/datagrid/core/config"
)

// ErrNotFound is returned for an unknown grid name.
var ErrNotFound = errors.New("grid not found")

// Manager handles loading and caching of grid definitions and their data.
// Definitions are loaded eagerly; data is loaded lazily on demand.
// It is safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	// Definitions indexed by grid name - loaded eagerly
	definitions map[string]*Definition

	// Cached data indexed by grid name - populated lazily
	data map[string]*Data

	// Registered loaders indexed by source type
	loaders map[string]Loader

	// Base directory for resolving relative paths of definitions added
	// without a file
	baseDir string
}

// NewManager creates a new manager with the built-in loaders registered.
func NewManager() *Manager {
	m := &Manager{
		definitions: make(map[string]*Definition),
		data:        make(map[string]*Data),
		loaders:     make(map[string]Loader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewTextprotoLoader())
	m.RegisterLoader(NewProtoLoader(nil))
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the base directory for resolving relative paths.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// LoadDefinitionFile reads one YAML definition file. Relative source paths
// in it are resolved against the file's directory.
func (m *Manager) LoadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := ParseDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.dir = filepath.Dir(path)
	if err := m.AddDefinition(def); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDirectory reads every *.yaml and *.yml file in dir, in name order.
// It returns the names of the grids it added.
func (m *Manager) LoadDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid directory: %w", err)
	}

	var added []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		def, err := m.LoadDefinitionFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return added, err
		}
		added = append(added, def.Name)
	}
	return added, nil
}

// AddDefinition registers a definition. Names must be unique.
func (m *Manager) AddDefinition(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.definitions[def.Name]; ok {
		return fmt.Errorf("grid %q is defined twice", def.Name)
	}
	if def.dir == "" {
		def.dir = m.baseDir
	}
	m.definitions[def.Name] = def
	return nil
}

// Names returns all registered grid names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.definitions))
}

// Definition returns the definition of a grid.
func (m *Manager) Definition(name string) (*Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return def, nil
}

// LoadData loads the data of a grid by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(name string) (*Data, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	if data, ok := m.data[name]; ok {
		m.mu.RUnlock()
		return data, nil
	}
	def, ok := m.definitions[name]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	loader, hasLoader := m.loaders[def.SourceType()]
	m.mu.RUnlock()

	var data *Data
	if def.SourceType() == SourceInline {
		data = &Data{Columns: InferColumns(def.Rows), Rows: def.Rows}
	} else {
		if !hasLoader {
			return nil, fmt.Errorf("no loader registered for source type %q", def.SourceType())
		}
		var err error
		data, err = loader.Load(m.resolveSource(*def.Source, def.dir))
		if err != nil {
			return nil, fmt.Errorf("failed to load grid %q: %w", name, err)
		}
	}

	// Cache the result
	m.mu.Lock()
	m.data[name] = data
	m.mu.Unlock()

	return data, nil
}

// Options returns the configuration options of a grid, loading its data
// when needed.
func (m *Manager) Options(name string) ([]config.Option, error) {
	def, err := m.Definition(name)
	if err != nil {
		return nil, err
	}
	data, err := m.LoadData(name)
	if err != nil {
		return nil, err
	}
	return def.Options(data), nil
}

// resolveSource resolves a relative file path against baseDir.
func (m *Manager) resolveSource(src Source, baseDir string) Source {
	if src.Path != "" && !filepath.IsAbs(src.Path) && baseDir != "" {
		src.Path = filepath.Join(baseDir, src.Path)
	}
	return src
}

// InvalidateCache removes the data of a grid from the cache, forcing reload
// on next access.
func (m *Manager) InvalidateCache(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
}

// IsLoaded returns whether data for a grid is currently cached.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[name]
	return ok
}
