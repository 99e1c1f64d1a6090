// Package credstore persists the console's credentials (token and cached
// profile) across runs. Values are opaque strings keyed by name; a missing or
// unreadable value reads back as absent rather than an error so a corrupted
// store degrades to "not logged in".
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known keys used by the session layer.
const (
	KeyToken    = "token"
	KeyUserInfo = "userInfo"
)

// Store is a small key-value persistence capability. Implementations must
// make Write idempotent (later write wins) and Erase a no-op when the key
// is absent.
type Store interface {
	// Read returns the stored value, or ok=false if the key is absent
	// or the backing store is unreadable.
	Read(key string) (value string, ok bool)
	Write(key, value string) error
	Erase(key string) error
}

const (
	configDirName   = "clusterview"
	credentialsFile = "credentials.json"
)

// File is a Store backed by a JSON file in the user's config directory.
type File struct {
	path string
}

// DefaultPath returns the default credentials file location
// (~/.config/clusterview/credentials.json).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, credentialsFile), nil
}

// NewFile creates a file-backed store at the given path. An empty path uses
// DefaultPath.
func NewFile(path string) (*File, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &File{path: path}, nil
}

// load reads the backing file into a map. Absent or corrupt files yield an
// empty map.
func (f *File) load() map[string]string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return map[string]string{}
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}
	}
	return values
}

func (f *File) save(values map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Credentials file is owner-only
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

func (f *File) Read(key string) (string, bool) {
	value, ok := f.load()[key]
	return value, ok
}

func (f *File) Write(key, value string) error {
	values := f.load()
	values[key] = value
	return f.save(values)
}

func (f *File) Erase(key string) error {
	values := f.load()
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// Memory is an in-process Store for tests.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Read(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *Memory) Write(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *Memory) Erase(key string) error {
	delete(m.values, key)
	return nil
}
