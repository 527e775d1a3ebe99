// Package session keeps short-lived CLI state on disk between invocations,
// such as a login that has been started but not yet confirmed. Every file
// is guarded by a lock file so concurrent invocations do not clobber each
// other.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds a state file's lock.
var ErrLocked = errors.New("could not acquire file lock, another instance may be running")

// Manager handles state files under a configurable directory.
type Manager struct {
	configDir string
}

// NewManager creates a manager rooted at configDir, normally the directory
// holding the configuration file.
func NewManager(configDir string) *Manager {
	return &Manager{configDir: configDir}
}

func (m *Manager) sessionDir() string {
	return filepath.Join(m.configDir, "sessions")
}

func (m *Manager) filePath(name string) string {
	return filepath.Join(m.sessionDir(), name)
}

// withLock runs fn while holding the lock file of name.
func (m *Manager) withLock(name string, fn func(path string) error) error {
	if err := os.MkdirAll(m.sessionDir(), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	path := m.filePath(name)
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = lock.Unlock() }()
	return fn(path)
}

// save writes v as JSON to the state file name.
func (m *Manager) save(name string, v any) error {
	return m.withLock(name, func(path string) error {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling session state: %w", err)
		}
		return os.WriteFile(path, data, 0o600)
	})
}

// load reads the state file name into v. It reports false when the file
// does not exist.
func (m *Manager) load(name string, v any) (bool, error) {
	found := false
	err := m.withLock(name, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("reading session file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshalling session state from %s: %w", path, err)
		}
		found = true
		return nil
	})
	return found, err
}

// remove deletes the state file name. A missing file is not an error.
func (m *Manager) remove(name string) error {
	return m.withLock(name, func(path string) error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting session file %s: %w", path, err)
		}
		return nil
	})
}
