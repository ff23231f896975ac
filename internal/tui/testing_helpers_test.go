package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/keybinds"
	"github.com/studiowebux/fileview/internal/session"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/workspace"
	"go.uber.org/zap/zaptest"
)

// maxFeedDepth bounds how many command generations feed follows
const maxFeedDepth = 8

// CreateTestModel creates a Model backed by a temporary cache and session.
// Status messages never expire and the clipboard is captured in copied.
func CreateTestModel(t *testing.T) (*Model, *[]string) {
	t.Helper()

	tempDir := t.TempDir()
	logger := zaptest.NewLogger(t)

	cache, err := filecache.NewManager(filepath.Join(tempDir, "test.db"), logger)
	if err != nil {
		t.Fatalf("Failed to create file cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	mgr := session.NewManager(filepath.Join(tempDir, ".session.json"))
	if err := mgr.Load(); err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	ws := workspace.New(store.New(), cache, workspace.Options{
		Logger:                logger,
		RecentLimit:           10,
		RefreshRecentOnIngest: true,
	})

	m := New(Options{
		Workspace: ws,
		Keys:      keybinds.NewDefaultRegistry(),
		Renderer:  highlight.New("monokai", true, true),
		Session:   mgr,
		Logger:    logger,
		StartDir:  tempDir,
	})
	m.statusTimeout = 0

	copied := &[]string{}
	m.copyFn = func(s string) error {
		*copied = append(*copied, s)
		return nil
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return &m, copied
}

// WriteTestFile writes contents under a fresh temp dir and returns the path
func WriteTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}
	return path
}

// feed runs cmd and every command produced by handling its messages,
// the way the bubbletea event loop would. It reports whether tea.Quit was seen.
func feed(t *testing.T, m *Model, cmd tea.Cmd) bool {
	t.Helper()
	return feedDepth(t, m, cmd, 0)
}

func feedDepth(t *testing.T, m *Model, cmd tea.Cmd, depth int) bool {
	t.Helper()
	if cmd == nil || depth > maxFeedDepth {
		return false
	}

	switch msg := cmd().(type) {
	case nil:
		return false
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		quit := false
		for _, c := range msg {
			if feedDepth(t, m, c, depth+1) {
				quit = true
			}
		}
		return quit
	default:
		_, next := m.Update(msg)
		return feedDepth(t, m, next, depth+1)
	}
}

// press sends a key string to the model and runs the resulting commands
func press(t *testing.T, m *Model, keys ...string) bool {
	t.Helper()
	quit := false
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		if feed(t, m, cmd) {
			quit = true
		}
	}
	return quit
}

// keyMsg builds the KeyMsg whose String() is key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
