// Package config provides configuration management for mknote, including the
// persisted Workspace Location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/logger"
)

const (
	// AppDir is the directory name under the user config directory
	AppDir = "mknote"
	// ConfigFile is the filename for the mknote configuration
	ConfigFile = "config.yaml"

	// EnvConfig overrides the configuration file path
	EnvConfig = "MKNOTE_CONFIG"
	// EnvLocation overrides the configured workspace location
	EnvLocation = "MKNOTE_LOCATION"
)

// ErrNotDirectory is returned by SetLocation for paths that are not directories
var ErrNotDirectory = errors.New("not a directory")

// DefaultPath returns the configuration file path: $MKNOTE_CONFIG, otherwise
// mknote/config.yaml under the user config directory ($XDG_CONFIG_HOME on Linux).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// Manager handles mknote configuration
type Manager struct {
	configPath string
	pub        events.Publisher
	log        logger.Logger

	mu  sync.RWMutex
	cfg *Config
}

// NewManager creates a new configuration manager for the file at configPath
func NewManager(configPath string, pub events.Publisher, log logger.Logger) *Manager {
	if pub == nil {
		pub = events.Discard
	}
	return &Manager{
		configPath: configPath,
		pub:        pub,
		log:        logger.Component(log, "config"),
		cfg:        DefaultConfig(),
	}
}

// Load reads the configuration from disk. A missing file yields the defaults.
func (m *Manager) Load() (*Config, error) {
	cfg, err := LoadWithValidation(m.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.log.Debug("no configuration file, using defaults", "path", m.configPath)
		cfg = DefaultConfig()
	case err != nil:
		return nil, err
	}

	applyDefaults(cfg)

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return m.Config(), nil
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := *m.cfg
	cp.Ignore = append([]string(nil), m.cfg.Ignore...)
	return &cp
}

// Save writes the configuration to disk
func (m *Manager) Save(config *Config) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	m.mu.Lock()
	cp := *config
	m.cfg = &cp
	m.mu.Unlock()
	return nil
}

// Location returns the workspace root. MKNOTE_LOCATION takes precedence over
// the configured value; an empty result means unconfigured.
func (m *Manager) Location() string {
	if env := os.Getenv(EnvLocation); env != "" {
		return filepath.Clean(env)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg.Location == "" {
		return ""
	}
	return filepath.Clean(m.cfg.Location)
}

// SetLocation persists a new workspace root. The path must be an existing
// directory. Subscribers are told that every derived view is stale.
func (m *Manager) SetLocation(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid location %s: %w", abs, ErrNotDirectory)
	}

	cfg := m.Config()
	cfg.Location = abs
	if err := m.Save(cfg); err != nil {
		return err
	}

	m.log.Info("workspace location changed", "location", abs)
	m.pub.Publish(events.New(events.LocationChanged, abs))
	return nil
}

// GetConfigPath returns the configuration file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
