package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/aprova-labs/edital-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// configFileName inside the config directory.
const configFileName = "config.toml"

// ConfigStore keeps the edital configuration in a single TOML file. Nested
// TOML tables are exposed through dot-notation keys ("watch.debounce_ms"),
// so callers never see the table structure.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]any
}

// NewConfigStore opens the store at configDir, creating the directory when
// needed. An empty configDir means ~/.edital. A missing config file is not
// an error; the store starts empty and Set creates it.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".edital")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, configFileName),
		values:   make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Get retrieves a raw configuration value by dot-notation key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the string at key, or "" when absent or not a string.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer at key, or 0 when absent or not an integer.
// TOML unmarshals integers as int64; values written through Set may be int.
func (s *ConfigStore) GetInt(key string) int {
	switch v, _ := s.Get(key); v := v.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetBool returns the boolean at key, or false when absent or not a boolean.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice returns the string slice at key, or nil when absent. TOML
// arrays unmarshal as []any; non-string elements are skipped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	switch v, _ := s.Get(key); v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores a value under a dot-notation key and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.write()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write marshals the values to the TOML file. Caller holds the lock. The
// file may hold paths from the user's home directory, so it is not
// world-readable.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the TOML file, replacing the in-memory values. A missing file
// resets the store to empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.values = make(map[string]any)
		return nil
	}
	if err != nil {
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.values = make(map[string]any)
	flatten(s.values, "", loaded)
	return nil
}

// flatten copies nested TOML tables into dst under dot-notation keys:
// {"watch": {"debounce_ms": 750}} becomes {"watch.debounce_ms": 750}.
func flatten(dst map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(dst, full, nested)
			continue
		}
		dst[full] = value
	}
}
