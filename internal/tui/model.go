package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/keybinds"
	"github.com/studiowebux/fileview/internal/session"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"github.com/studiowebux/fileview/internal/workspace"
	"go.uber.org/zap"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePicker
	ModeRecent
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePicker:
		return "picker"
	case ModeRecent:
		return "recent"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Model represents the TUI state
type Model struct {
	// Core
	ws         *workspace.Workspace
	store      *store.Store
	keys       *keybinds.Registry
	renderer   *highlight.Renderer
	sessionMgr *session.Manager
	logger     *zap.Logger
	copyFn     func(string) error
	subID      string

	mode        Mode
	initialFile string

	// Viewports
	viewer    viewport.Model
	helpView  viewport.Model
	modalView viewport.Model
	picker    filepicker.Model

	// Viewer sync
	renderKey    string
	lastContents string

	// Tabs
	activeTabID int64

	// Recent list
	recentIndex     int
	recentFilter    string
	recentFiltering bool

	// UI state
	width         int
	height        int
	statusMsg     string
	errorMsg      string
	statusSeq     int
	statusTimeout time.Duration
}

// Init loads the recent list, reads the picker directory and opens the
// initial file when one was given
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadRecentCmd(m.ws), m.picker.Init()}
	if m.initialFile != "" {
		cmds = append(cmds, m.selectFile(m.initialFile))
	}
	return tea.Batch(cmds...)
}

// Cleanup stops late completions from touching the store
func (m *Model) Cleanup() {
	m.ws.Close()
	if m.subID != "" {
		m.store.Unsubscribe(m.subID)
		m.subID = ""
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	// Mouse events are swallowed; navigation is keyboard-only
	case tea.MouseMsg:

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()
		m.picker, cmd = m.picker.Update(msg)

	case fileReadMsg:
		cmd = m.handleFileRead(msg)

	case recentLookupMsg:
		cmd = m.handleRecentLookup(msg)

	case recentLoadedMsg:
		m.handleRecentLoaded(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			cmd = m.setErrorMessage(fmt.Sprintf("Failed to copy to clipboard: %v", msg.err))
		} else {
			cmd = m.setStatusMessage(fmt.Sprintf("Copied %s to clipboard", msg.name))
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.errorMsg = ""
		}

	default:
		// directory listings and errors of the file picker
		m.picker, cmd = m.picker.Update(msg)
	}

	m.syncViewer()
	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModePicker:
		return m.renderPicker()
	case ModeRecent:
		return m.renderRecentModal()
	default:
		return m.renderMain()
	}
}

// updateViewport sizes the viewers to the window
func (m *Model) updateViewport() {
	w := m.width - ViewportBorderWidth
	h := m.height - TabBarHeight - StatusBarHeight - ViewportBorderWidth
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.viewer.Width = w
	m.viewer.Height = h

	m.helpView.Width = w - ViewportPaddingHorizontal
	m.helpView.Height = h - ModalFooterLines
	if m.helpView.Width < 10 {
		m.helpView.Width = 10
	}
	if m.helpView.Height < 1 {
		m.helpView.Height = 1
	}
	if m.mode == ModeHelp {
		m.updateHelpView()
	}
}

// syncViewer re-renders the viewer content when the store or the render
// options changed since the last call
func (m *Model) syncViewer() {
	snap := m.store.Snapshot()
	key := fmt.Sprintf("%d/%d/%d/%s/%t/%t", snap.Revision, m.activeTabID, m.viewer.Width,
		m.renderer.Theme(), m.renderer.LineNumbers(), m.renderer.Wrap())
	if key == m.renderKey {
		return
	}
	m.renderKey = key

	m.viewer.SetContent(m.viewerContent(snap))
	if snap.ActiveContents != m.lastContents {
		m.viewer.GotoTop()
		m.lastContents = snap.ActiveContents
	}
}

func (m *Model) viewerContent(snap store.Snapshot) string {
	if !snap.HasContents {
		if snap.ActiveFile == nil {
			return m.renderWelcome()
		}
		if snap.Notice != nil && snap.Notice.Kind == types.NoticeReadFailed {
			return styleError.Render("Could not read "+snap.ActiveFile.Name) + "\n\n" +
				styleSubtle.Render(categorizeFileError(snap.Notice.Err)) + "\n\n" +
				styleSubtle.Render(fmt.Sprintf("Press %s to retry", m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionRetry)))
		}
		return styleSubtle.Render("Reading " + snap.ActiveFile.Name + "...")
	}

	name, mimeType := m.displayed(snap)
	lang := highlight.LanguageFor(name, mimeType, sample(snap.ActiveContents))
	return m.renderer.Render(snap.ActiveContents, lang, m.viewer.Width)
}

// displayed returns the name and MIME type describing the shown contents.
// Switching to an open tab from the recent list leaves the active file as it
// was, so the highlighted tab wins when its name differs.
func (m *Model) displayed(snap store.Snapshot) (name, mimeType string) {
	if snap.ActiveFile != nil {
		name, mimeType = snap.ActiveFile.Name, snap.ActiveFile.Type
	}
	if i := store.IndexOfTab(snap.OpenTabs, m.activeTabID); i >= 0 && snap.OpenTabs[i].Name != name {
		return snap.OpenTabs[i].Name, snap.OpenTabs[i].Type
	}
	if mimeType == "" {
		if i := m.activeTabIndex(snap.OpenTabs); i >= 0 {
			mimeType = snap.OpenTabs[i].Type
		}
	}
	return name, mimeType
}

func sample(contents string) string {
	if len(contents) > ContentSampleBytes {
		return contents[:ContentSampleBytes]
	}
	return contents
}

func isBinary(contents string) bool {
	return strings.IndexByte(sample(contents), 0) >= 0
}

// Custom message types
type fileReadMsg struct {
	result workspace.ReadResult
}

type recentLookupMsg struct {
	name   string
	record *types.FileRecord
	err    error
}

type recentLoadedMsg struct {
	records []types.FileRecord
	err     error
}

type clipboardMsg struct {
	name string
	err  error
}

type clearStatusMsg struct {
	seq int
}

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, MaxStatusLength)
	m.errorMsg = ""
	return m.scheduleClear()
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, MaxStatusLength)
	return m.scheduleClear()
}

func (m *Model) scheduleClear() tea.Cmd {
	m.statusSeq++
	if m.statusTimeout <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// truncate shortens s to at most n cells
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
