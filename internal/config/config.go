package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justyntemme/foldernav/internal/debug"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Navigation NavigationConfig `json:"navigation"`
	Watch      WatchConfig      `json:"watch"`
	UI         UIConfig         `json:"ui"`
	Store      StoreConfig      `json:"store"`
}

// NavigationConfig tunes "go to path" and history
type NavigationConfig struct {
	RevealDelayMs    int    `json:"revealDelayMs"`    // first wait for the tree to show a row
	RevealMaxDelayMs int    `json:"revealMaxDelayMs"` // cap for the doubled wait
	RevealAttempts   int    `json:"revealAttempts"`   // waits per folder before giving up
	HistorySize      int    `json:"historySize"`
	RestoreLastPath  bool   `json:"restoreLastPath"`
	StartPath        string `json:"startPath"` // used when there is no last path; empty means home
}

// WatchConfig holds filesystem watcher settings
type WatchConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme      string `json:"theme"`     // "light" or "dark"
	TreeWidth  int    `json:"treeWidth"` // tree pane width in dp
	ShowHidden bool   `json:"showHidden"`
}

// StoreConfig holds the sqlite database location
type StoreConfig struct {
	Path string `json:"path"` // empty means next to config.json
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Navigation: NavigationConfig{
			RevealDelayMs:    100,
			RevealMaxDelayMs: 800,
			RevealAttempts:   4,
			HistorySize:      100,
			RestoreLastPath:  true,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
		UI: UIConfig{
			Theme:     "light",
			TreeWidth: 280,
		},
	}
}

// Dir returns the config directory: ~/.config/foldernav
// This is consistent across all platforms (Windows, macOS, Linux)
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "foldernav")
}

// ConfigPath returns the default config file path: ~/.config/foldernav/config.json
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the configuration from path, or from ConfigPath when path is empty.
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		path = ConfigPath()
	}
	m.path = path
	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.APP, "Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if err := m.saveUnlocked(); err != nil {
			return fmt.Errorf("save default config: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		debug.Errorf(debug.APP, "Config: JSON parse error in %s: %v", m.path, err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	debug.Log(debug.APP, "Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	if m.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Path returns the file the configuration was loaded from.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) error {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	return m.Save()
}

// SetShowHidden updates the show hidden folders setting
func (m *Manager) SetShowHidden(show bool) error {
	m.mu.Lock()
	m.config.UI.ShowHidden = show
	m.mu.Unlock()
	return m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// RevealTiming converts the navigation settings to durations. Non-positive
// values fall back to the defaults.
func (c Config) RevealTiming() (delay, maxDelay time.Duration, attempts int) {
	def := DefaultConfig().Navigation
	n := c.Navigation
	if n.RevealDelayMs <= 0 {
		n.RevealDelayMs = def.RevealDelayMs
	}
	if n.RevealMaxDelayMs < n.RevealDelayMs {
		n.RevealMaxDelayMs = n.RevealDelayMs
	}
	if n.RevealAttempts <= 0 {
		n.RevealAttempts = def.RevealAttempts
	}
	return time.Duration(n.RevealDelayMs) * time.Millisecond,
		time.Duration(n.RevealMaxDelayMs) * time.Millisecond,
		n.RevealAttempts
}

// StorePath returns the sqlite database path, defaulting to foldernav.db
// next to the config file.
func (m *Manager) StorePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.Store.Path != "" {
		return m.config.Store.Path
	}
	dir := Dir()
	if m.path != "" {
		dir = filepath.Dir(m.path)
	}
	return filepath.Join(dir, "foldernav.db")
}

// GenerateConfig backs up the config at path (ConfigPath when empty) and
// writes a fresh default config.
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
