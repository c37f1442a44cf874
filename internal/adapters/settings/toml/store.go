// Package toml keeps settings in a single TOML file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/page-push/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName         = "config"
	configType         = "toml"
	SettingsPathKey    = "settings.path"
	settingsFileMode   = 0o600
	settingsDirMode    = 0o700
	settingsConfigDir  = ".pagepush"
	settingsConfigFile = "settings.toml"
	tempFilePattern    = ".settings-*.toml.tmp"
)

// Store is a ports.SettingsStore over one TOML file. Stores opened on the
// same path share a lock, so in-process writers never interleave.
type Store struct {
	settingsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SettingsStore = (*Store)(nil)

// NewStore resolves the file from settings.path, falling back to
// ~/.pagepush/settings.toml. A config.toml next to it may set the path.
func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, settingsConfigDir, settingsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, settingsConfigDir))
	cfg.SetDefault(SettingsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	settingsPath := cfg.GetString(SettingsPathKey)
	if settingsPath == "" {
		return nil, errors.New("settings path is empty")
	}
	settingsPath, err = normalizeSettingsPath(settingsPath)
	if err != nil {
		return nil, err
	}

	return &Store{settingsPath: settingsPath, mu: lockForPath(settingsPath)}, nil
}

func (s *Store) Path() string {
	return s.settingsPath
}

func (s *Store) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := file.Values[key]; ok {
			values[key] = value
		}
	}

	return values, nil
}

func (s *Store) Set(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	for key, value := range values {
		file.Values[key] = value
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	var file fileSchema

	data, err := os.ReadFile(s.settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.settingsPath), settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.settingsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}

	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tempName, s.settingsPath); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(s.settingsPath, settingsFileMode); err != nil {
		return fmt.Errorf("chmod settings file: %w", err)
	}

	return nil
}

func normalizeSettingsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
