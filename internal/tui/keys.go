package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/fileview/internal/keybinds"
)

// handleKeyPress routes a key to the handler of the current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKeys(msg)
	case ModeRecent:
		if m.recentFiltering {
			return m.handleRecentFilterKeys(msg)
		}
		return m.handleRecentKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// 1-9 jump to a tab
	if n, ok := quickSelect(key); ok {
		m.keys.ClearMultiKeyState(keybinds.ContextNormal)
		return m.selectTabAt(n)
	}

	action, ok, partial := m.keys.MatchMultiKey(keybinds.ContextNormal, key)
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit

	case keybinds.ActionOpenPicker:
		m.mode = ModePicker
		return m.picker.Init()

	case keybinds.ActionOpenRecent:
		m.mode = ModeRecent
		m.recentIndex = 0
		m.recentFilter = ""
		m.recentFiltering = false

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
		m.helpView.GotoTop()

	case keybinds.ActionNextTab:
		return m.cycleTab(1)
	case keybinds.ActionPrevTab:
		return m.cycleTab(-1)
	case keybinds.ActionCloseTab:
		return m.closeActiveTab()

	case keybinds.ActionCopyContents:
		return m.copyContents()
	case keybinds.ActionCycleTheme:
		return m.cycleTheme()
	case keybinds.ActionToggleLineNumbers:
		return m.toggleLineNumbers()
	case keybinds.ActionToggleWrap:
		return m.toggleWrap()

	case keybinds.ActionRetry:
		return m.retry()
	case keybinds.ActionDismissNotice:
		m.ws.DismissNotice()
		m.errorMsg = ""
	case keybinds.ActionRefreshRecent:
		return loadRecentCmd(m.ws)

	default:
		scrollViewport(&m.viewer, action)
	}

	return nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextPicker, msg.String()); ok && action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.mode = ModeNormal
		return tea.Batch(cmd, m.selectFile(path))
	}
	return cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}
	if action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
		return nil
	}
	scrollViewport(&m.helpView, action)
	return nil
}

// scrollViewport applies a navigation action and reports whether it was one
func scrollViewport(vp *viewport.Model, action keybinds.Action) bool {
	switch action {
	case keybinds.ActionNavigateUp:
		vp.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		vp.ScrollDown(1)
	case keybinds.ActionPageUp:
		vp.PageUp()
	case keybinds.ActionPageDown:
		vp.PageDown()
	case keybinds.ActionHalfPageUp:
		vp.HalfViewUp()
	case keybinds.ActionHalfPageDown:
		vp.HalfViewDown()
	case keybinds.ActionGoToTop:
		vp.GotoTop()
	case keybinds.ActionGoToBottom:
		vp.GotoBottom()
	default:
		return false
	}
	return true
}

// quickSelect maps "1".."9" to a zero based index
func quickSelect(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+QuickSelectMax {
		return 0, false
	}
	return int(key[0] - '1'), true
}
