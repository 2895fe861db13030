package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultKey is the storage key the flag is persisted under.
const DefaultKey = "dragons_realm_admin"

// Store persists the admin flag. Implementations must treat a missing value
// as false.
type Store interface {
	Load(ctx context.Context) (bool, error)
	Save(ctx context.Context, on bool) error
}

// encode and decode use the same string form in every backend.
func encode(on bool) string { return strconv.FormatBool(on) }

// decode accepts only the exact word "true"; "1", "t" and "TRUE" read as off.
func decode(raw string) bool {
	return strings.TrimSpace(raw) == "true"
}

// MemoryStore keeps the flag in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with on.
func NewMemoryStore(on bool) *MemoryStore {
	return &MemoryStore{value: encode(on)}
}

func (m *MemoryStore) Load(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.value), nil
}

func (m *MemoryStore) Save(_ context.Context, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = encode(on)
	return nil
}

// FileStore persists the flag as a file named after the key.
type FileStore struct {
	Dir string
	Key string
}

var _ Store = (*FileStore)(nil)

// DefaultDir returns ~/.dragonsrealm.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dragonsrealm"
	}
	return filepath.Join(home, ".dragonsrealm")
}

// NewFileStore creates a file store. Empty arguments select the defaults.
func NewFileStore(dir, key string) *FileStore {
	if dir == "" {
		dir = DefaultDir()
	}
	if key == "" {
		key = DefaultKey
	}
	return &FileStore{Dir: dir, Key: key}
}

func (f *FileStore) path() string {
	return filepath.Join(f.Dir, f.Key)
}

func (f *FileStore) Load(context.Context) (bool, error) {
	data, err := os.ReadFile(f.path())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading admin flag: %w", err)
	}
	return decode(string(data)), nil
}

func (f *FileStore) Save(_ context.Context, on bool) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("creating admin dir: %w", err)
	}
	if err := os.WriteFile(f.path(), []byte(encode(on)), 0o644); err != nil {
		return fmt.Errorf("writing admin flag: %w", err)
	}
	return nil
}
