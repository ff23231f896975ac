package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/studiowebux/fileview/internal/config"
)

const maxRecentDirectories = 10

// Session is UI state that survives restarts. Cached files are not part of
// it; those live in the file cache.
type Session struct {
	LastDirectory     string   `json:"lastDirectory,omitempty"`
	RecentDirectories []string `json:"recentDirectories,omitempty"`
	Theme             string   `json:"theme,omitempty"`
	LineNumbers       *bool    `json:"lineNumbers,omitempty"`
	Wrap              *bool    `json:"wrap,omitempty"`
}

// Manager loads and saves the session file
type Manager struct {
	mu      sync.Mutex
	path    string
	session Session
}

// NewManager creates a session manager for path.
// An empty path means config.SessionFile.
func NewManager(path string) *Manager {
	if path == "" {
		path = config.SessionFile
	}
	return &Manager{path: path}
}

// Load reads the session file. A missing file yields an empty session.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.session = Session{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	m.session = s
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	data, err := json.MarshalIndent(m.session, "", "  ")
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Get returns a copy of the current session
func (m *Manager) Get() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	s.RecentDirectories = append([]string(nil), m.session.RecentDirectories...)
	return s
}

// SetTheme records the theme override and saves
func (m *Manager) SetTheme(theme string) error {
	m.mu.Lock()
	m.session.Theme = theme
	m.mu.Unlock()
	return m.Save()
}

// SetViewerToggles records the line number and wrap overrides and saves
func (m *Manager) SetViewerToggles(lineNumbers, wrap bool) error {
	m.mu.Lock()
	m.session.LineNumbers = &lineNumbers
	m.session.Wrap = &wrap
	m.mu.Unlock()
	return m.Save()
}

// AddRecentDirectory moves dir to the front of the directory MRU list,
// sets it as the last directory and saves. The list keeps 10 entries.
func (m *Manager) AddRecentDirectory(dir string) error {
	if dir == "" {
		return nil
	}

	m.mu.Lock()
	recent := []string{dir}
	for _, d := range m.session.RecentDirectories {
		if d != dir {
			recent = append(recent, d)
		}
	}
	if len(recent) > maxRecentDirectories {
		recent = recent[:maxRecentDirectories]
	}
	m.session.RecentDirectories = recent
	m.session.LastDirectory = dir
	m.mu.Unlock()

	return m.Save()
}

// ApplyViewer overlays the session overrides on the configured viewer settings
func (m *Manager) ApplyViewer(v config.ViewerSettings) config.ViewerSettings {
	s := m.Get()
	if s.Theme != "" {
		v.Theme = s.Theme
	}
	if s.LineNumbers != nil {
		v.LineNumbers = *s.LineNumbers
	}
	if s.Wrap != nil {
		v.Wrap = *s.Wrap
	}
	return v
}
