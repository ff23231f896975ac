package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "FILEVIEW_HOME"
)

var (
	// ConfigDir is the global configuration directory (~/.fileview)
	ConfigDir string

	// DatabasePath is the SQLite database file holding cached files
	DatabasePath string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// SessionFile is the session state file
	SessionFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LogFile receives structured logs while the TUI owns the terminal
	LogFile string
)

// Settings holds user-tunable behavior loaded from config.yaml
type Settings struct {
	Recent RecentSettings `yaml:"recent"`
	Cache  CacheSettings  `yaml:"cache"`
	Viewer ViewerSettings `yaml:"viewer"`
	Log    LogSettings    `yaml:"log"`
}

// RecentSettings controls the recent files list
type RecentSettings struct {
	Limit           int  `yaml:"limit"`
	RefreshOnIngest bool `yaml:"refresh_on_ingest"`
}

// CacheSettings is the retention policy of the file cache.
// Zero values disable the corresponding limit.
type CacheSettings struct {
	MaxRecords int           `yaml:"max_records"`
	MaxAge     time.Duration `yaml:"max_age"`
}

// ViewerSettings controls the code view
type ViewerSettings struct {
	Theme       string `yaml:"theme"`
	LineNumbers bool   `yaml:"line_numbers"`
	Wrap        bool   `yaml:"wrap"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `yaml:"level"`
}

// DefaultSettings returns the settings used when config.yaml is missing or partial
func DefaultSettings() Settings {
	return Settings{
		Recent: RecentSettings{
			Limit:           5,
			RefreshOnIngest: true,
		},
		Cache: CacheSettings{
			MaxRecords: 200,
		},
		Viewer: ViewerSettings{
			Theme:       "monokai",
			LineNumbers: true,
			Wrap:        true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Initialize sets up the configuration directory and files
// It creates ~/.fileview/ (or the override directory) if it doesn't exist
func Initialize(home string) error {
	if home == "" {
		home = os.Getenv(HomeEnv)
	}
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(homeDir, ".fileview")
	}

	if strings.HasPrefix(home, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(homeDir, home[2:])
	}

	// Set global paths
	ConfigDir = home
	DatabasePath = filepath.Join(ConfigDir, "fileview.db")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogFile = filepath.Join(ConfigDir, "fileview.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(DefaultSettings())
		if err != nil {
			return fmt.Errorf("failed to marshal default settings: %w", err)
		}
		if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		if err := os.WriteFile(SessionFile, []byte(`{}`), FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	return nil
}

// LoadSettings reads config.yaml over the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid config.yaml format: %w", err)
	}

	if settings.Recent.Limit <= 0 {
		settings.Recent.Limit = DefaultSettings().Recent.Limit
	}
	if settings.Cache.MaxRecords < 0 {
		settings.Cache.MaxRecords = 0
	}
	if settings.Viewer.Theme == "" {
		settings.Viewer.Theme = DefaultSettings().Viewer.Theme
	}

	return settings, nil
}
