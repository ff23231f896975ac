package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"github.com/studiowebux/fileview/internal/workspace"
	"go.uber.org/zap"
)

// readFileCmd reads a pending selection off the event loop
func readFileCmd(ws *workspace.Workspace, p workspace.PendingRead) tea.Cmd {
	return func() tea.Msg {
		return fileReadMsg{result: ws.Read(p)}
	}
}

// lookupRecentCmd queries the cache for a recent file by name
func lookupRecentCmd(ws *workspace.Workspace, name string) tea.Cmd {
	return func() tea.Msg {
		rec, err := ws.LookupRecent(name)
		return recentLookupMsg{name: name, record: rec, err: err}
	}
}

// loadRecentCmd queries the most recently modified cache records
func loadRecentCmd(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		records, err := ws.QueryRecent()
		return recentLoadedMsg{records: records, err: err}
	}
}

// selectFile marks path active and starts reading it
func (m *Model) selectFile(path string) tea.Cmd {
	pending, err := m.ws.Select(path)
	if err != nil {
		// an empty selection is logged by the workspace and otherwise ignored
		return nil
	}
	m.activeTabID = 0

	if m.sessionMgr != nil {
		if err := m.sessionMgr.AddRecentDirectory(filepath.Dir(pending.Document.Path)); err != nil {
			m.logger.Warn("failed to save session", zap.Error(err))
		}
	}

	return readFileCmd(m.ws, pending)
}

func (m *Model) handleFileRead(msg fileReadMsg) tea.Cmd {
	err := m.ws.Complete(msg.result)
	name := msg.result.Document.Name

	switch {
	case errors.Is(err, workspace.ErrClosed):
		return nil
	case err != nil && msg.result.Err != nil:
		// read failed; the notice carries the details
		return nil
	}

	tabs := m.store.OpenTabs()
	if n := len(tabs); n > 0 {
		m.activeTabID = tabs[n-1].ID
	}
	if err != nil {
		// opened, but the cache write or refresh failed; the notice says why
		return nil
	}
	return m.setStatusMessage(fmt.Sprintf("Opened %s", name))
}

func (m *Model) handleRecentLookup(msg recentLookupMsg) tea.Cmd {
	outcome, err := m.ws.ApplyOpen(msg.name, msg.record, msg.err)
	if err != nil {
		return nil
	}

	tabs := m.store.OpenTabs()
	switch outcome {
	case workspace.OpenedTab:
		if n := len(tabs); n > 0 {
			m.activeTabID = tabs[n-1].ID
		}
		return m.setStatusMessage(fmt.Sprintf("Opened %s from cache", msg.name))
	case workspace.OpenSwitched:
		if tab, ok := store.FindTabByName(tabs, msg.name); ok {
			m.activeTabID = tab.ID
		}
		return m.setStatusMessage(fmt.Sprintf("Switched to %s", msg.name))
	default:
		return nil
	}
}

func (m *Model) handleRecentLoaded(msg recentLoadedMsg) {
	if err := m.ws.ApplyRecent(msg.records, msg.err); err != nil {
		return
	}
	if n := len(m.visibleRecent()); m.recentIndex >= n {
		m.recentIndex = max(0, n-1)
	}
}

// retry re-reads the file named by a retryable notice
func (m *Model) retry() tea.Cmd {
	pending, err := m.ws.Retry()
	if err != nil {
		return m.setErrorMessage("Nothing to retry")
	}
	m.activeTabID = 0
	return tea.Batch(m.setStatusMessage("Retrying "+pending.Document.Name), readFileCmd(m.ws, pending))
}

// activeTabIndex is the index of the highlighted tab, or -1.
// Without an explicit selection the last tab is active.
func (m *Model) activeTabIndex(tabs []types.Tab) int {
	if len(tabs) == 0 || m.store.ActiveFile() == nil {
		return -1
	}
	if i := store.IndexOfTab(tabs, m.activeTabID); i >= 0 {
		return i
	}
	return len(tabs) - 1
}

func (m *Model) selectTab(id int64) {
	if m.ws.SelectTab(id) {
		m.activeTabID = id
	}
}

func (m *Model) selectTabAt(index int) tea.Cmd {
	tabs := m.store.OpenTabs()
	if index < 0 || index >= len(tabs) {
		return nil
	}
	m.selectTab(tabs[index].ID)
	return nil
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	tabs := m.store.OpenTabs()
	n := len(tabs)
	if n == 0 {
		return nil
	}
	i := m.activeTabIndex(tabs)
	if i < 0 {
		i = 0
		delta = 0
	}
	return m.selectTabAt(((i+delta)%n + n) % n)
}

func (m *Model) closeActiveTab() tea.Cmd {
	tabs := m.store.OpenTabs()
	i := m.activeTabIndex(tabs)
	if i < 0 {
		if len(tabs) == 0 {
			return m.setErrorMessage("No open tabs")
		}
		i = len(tabs) - 1
	}

	closed := tabs[i]
	if !m.ws.CloseTab(closed.ID) {
		return nil
	}

	m.activeTabID = 0
	if remaining := m.store.OpenTabs(); len(remaining) > 0 {
		m.activeTabID = remaining[len(remaining)-1].ID
	}
	return m.setStatusMessage(fmt.Sprintf("Closed %s", closed.Name))
}

// copyContents copies the active contents to the clipboard
func (m *Model) copyContents() tea.Cmd {
	contents, ok := m.store.ActiveContents()
	if !ok {
		return m.setErrorMessage("Nothing to copy")
	}
	name := "contents"
	if doc := m.store.ActiveFile(); doc != nil {
		name = doc.Name
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return clipboardMsg{name: name, err: copyFn(contents)}
	}
}

func (m *Model) cycleTheme() tea.Cmd {
	theme := m.renderer.NextTheme()
	if m.sessionMgr != nil {
		if err := m.sessionMgr.SetTheme(theme); err != nil {
			m.logger.Warn("failed to save theme", zap.Error(err))
		}
	}
	return m.setStatusMessage("Theme: " + theme)
}

func (m *Model) saveToggles() {
	if m.sessionMgr == nil {
		return
	}
	if err := m.sessionMgr.SetViewerToggles(m.renderer.LineNumbers(), m.renderer.Wrap()); err != nil {
		m.logger.Warn("failed to save viewer settings", zap.Error(err))
	}
}

func (m *Model) toggleLineNumbers() tea.Cmd {
	m.renderer.ToggleLineNumbers()
	m.saveToggles()
	return m.setStatusMessage(fmt.Sprintf("Line numbers: %s", onOff(m.renderer.LineNumbers())))
}

func (m *Model) toggleWrap() tea.Cmd {
	m.renderer.ToggleWrap()
	m.saveToggles()
	return m.setStatusMessage(fmt.Sprintf("Wrap: %s", onOff(m.renderer.Wrap())))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// languageLabel names the lexer used for the active file
func (m *Model) languageLabel() string {
	snap := m.store.Snapshot()
	if !snap.HasContents || snap.ActiveFile == nil {
		return ""
	}
	name, mimeType := m.displayed(snap)
	return highlight.LanguageFor(name, mimeType, sample(snap.ActiveContents))
}
