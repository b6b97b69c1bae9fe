// Package kvstore is the client's small persistent key-value state: the
// bearer token and the signed-in user.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	TokenKey = "lumina.auth.token"
	UserKey  = "lumina.auth.user"
)

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	// SetMany writes every pair or none of them.
	SetMany(values map[string]string) error
	Delete(keys ...string) error
}

// ======================================================
// MEMORY
// ======================================================

type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// ======================================================
// FILE
// ======================================================

// File keeps all keys in one JSON object on disk. Every write replaces the
// file through a rename so a crash never leaves it half written.
type File struct {
	mu   sync.Mutex
	path string
}

// DefaultDir is LUMINA_STATE_DIR, or lumina/ under the user config dir.
func DefaultDir() (string, error) {
	if dir := os.Getenv("LUMINA_STATE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "lumina"), nil
}

func NewFile(dir string) *File {
	return &File{path: filepath.Join(dir, "state.json")}
}

func (f *File) Path() string { return f.path }

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) SetMany(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return f.write(current)
}

func (f *File) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	return f.write(values)
}

func (f *File) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", f.path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, f.path)
}
