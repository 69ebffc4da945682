// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/At1ass/tt-riingd/pkg/file"
)

// filePerm is the permission mode used for saved configuration files.
const filePerm = 0o644

// Manager owns the on-disk path and the parsed configuration behind a
// reader/writer lock. Only Save and SaveTo write to the filesystem; Load,
// Reload and AnalyzeChanges read from it, and Get touches no file.
type Manager struct {
	mu   sync.RWMutex
	path string
	root *Root
}

// NewManager builds an empty Manager. Call Load before using Get/Reload/Save.
func NewManager() *Manager {
	return &Manager{}
}

// Load resolves path (via Locate when empty), parses the file there, and
// stores it as the current configuration.
func (m *Manager) Load(path string) error {
	if path == "" {
		resolved, err := Locate()
		if err != nil {
			return err
		}
		path = resolved
	}

	root, err := parseFile(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = path
	m.root = root
	return nil
}

// Get returns the currently loaded configuration. The returned pointer
// must be treated as read-only by callers.
func (m *Manager) Get() *Root {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// Path returns the configuration file path Load resolved.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Reload re-parses the file at the previously resolved path and
// atomically swaps it in as the current configuration. A failed reload
// leaves the previous configuration in place.
func (m *Manager) Reload() error {
	m.mu.RLock()
	path := m.path
	m.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}

	root, err := parseFile(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = root
	return nil
}

// Save writes the current configuration back to its resolved path.
func (m *Manager) Save() error {
	m.mu.RLock()
	path := m.path
	root := m.root
	m.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}
	return saveTo(path, root)
}

// SaveTo writes the current configuration to an explicit path, without
// changing the manager's resolved path.
func (m *Manager) SaveTo(path string) error {
	m.mu.RLock()
	root := m.root
	m.mu.RUnlock()
	return saveTo(path, root)
}

// AnalyzeChanges re-parses the file at the resolved path and classifies
// the difference against the in-memory configuration, without mutating
// the manager's state.
func (m *Manager) AnalyzeChanges() (Change, error) {
	m.mu.RLock()
	path := m.path
	cur := m.root
	m.mu.RUnlock()
	if path == "" {
		return Change{}, ErrNoPath
	}

	next, err := parseFile(path)
	if err != nil {
		return Change{}, err
	}

	return Classify(cur, next), nil
}

func parseFile(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func saveTo(path string, root *Root) error {
	data, err := Marshal(root)
	if err != nil {
		return err
	}
	if err := file.AtomicReplaceFile(path, data, filePerm); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}
