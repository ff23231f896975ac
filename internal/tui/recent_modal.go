package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/fileview/internal/keybinds"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
)

// recentItem is a recent record with the name positions matched by the filter
type recentItem struct {
	record  types.FileRecord
	matched []int
}

// filterRecent keeps store order without a query, fuzzy score order with one
func filterRecent(records []types.FileRecord, query string) []recentItem {
	if query == "" {
		items := make([]recentItem, len(records))
		for i, rec := range records {
			items[i] = recentItem{record: rec}
		}
		return items
	}

	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}

	matches := fuzzy.Find(query, names)
	items := make([]recentItem, 0, len(matches))
	for _, match := range matches {
		items = append(items, recentItem{record: records[match.Index], matched: match.MatchedIndexes})
	}
	return items
}

func (m *Model) visibleRecent() []recentItem {
	return filterRecent(m.store.RecentFiles(), m.recentFilter)
}

// handleRecentKeys handles keyboard input in the recent files list
func (m *Model) handleRecentKeys(msg tea.KeyMsg) tea.Cmd {
	items := m.visibleRecent()
	key := msg.String()

	if n, ok := quickSelect(key); ok {
		m.keys.ClearMultiKeyState(keybinds.ContextRecent)
		if n < len(items) {
			m.recentIndex = n
			return m.openRecent(items[n].record.Name)
		}
		return nil
	}

	action, ok, partial := m.keys.MatchMultiKey(keybinds.ContextRecent, key)
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
		m.recentFilter = ""
		m.errorMsg = ""

	case keybinds.ActionNavigateDown:
		if len(items) > 0 {
			m.recentIndex = (m.recentIndex + 1) % len(items)
		}
	case keybinds.ActionNavigateUp:
		if len(items) > 0 {
			m.recentIndex = (m.recentIndex - 1 + len(items)) % len(items)
		}
	case keybinds.ActionGoToTop:
		m.recentIndex = 0
	case keybinds.ActionGoToBottom:
		if len(items) > 0 {
			m.recentIndex = len(items) - 1
		}

	case keybinds.ActionOpenSelected:
		if len(items) == 0 {
			return m.setErrorMessage("No recent files")
		}
		if m.recentIndex >= len(items) {
			m.recentIndex = len(items) - 1
		}
		return m.openRecent(items[m.recentIndex].record.Name)

	case keybinds.ActionStartFilter:
		m.recentFiltering = true
	case keybinds.ActionClearFilter:
		m.recentFilter = ""
		m.recentIndex = 0
	case keybinds.ActionRefreshRecent:
		return loadRecentCmd(m.ws)
	}

	return nil
}

// handleRecentFilterKeys edits the fuzzy filter
func (m *Model) handleRecentFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextRecentFilter, msg.String()); ok {
		items := m.visibleRecent()
		switch action {
		case keybinds.ActionTextBackspace:
			if r := []rune(m.recentFilter); len(r) > 0 {
				m.recentFilter = string(r[:len(r)-1])
				m.recentIndex = 0
			}
		case keybinds.ActionTextSubmit:
			m.recentFiltering = false
		case keybinds.ActionTextCancel:
			m.recentFiltering = false
			m.recentFilter = ""
			m.recentIndex = 0
		case keybinds.ActionNavigateDown:
			if len(items) > 0 {
				m.recentIndex = (m.recentIndex + 1) % len(items)
			}
		case keybinds.ActionNavigateUp:
			if len(items) > 0 {
				m.recentIndex = (m.recentIndex - 1 + len(items)) % len(items)
			}
		}
		return nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.recentFilter += string(msg.Runes)
		m.recentIndex = 0
	case tea.KeySpace:
		m.recentFilter += " "
		m.recentIndex = 0
	}
	return nil
}

func (m *Model) openRecent(name string) tea.Cmd {
	m.mode = ModeNormal
	m.recentFiltering = false
	m.recentFilter = ""
	return lookupRecentCmd(m.ws, name)
}

// renderRecentModal renders the recent files list
func (m *Model) renderRecentModal() string {
	records := m.store.RecentFiles()
	footer := "[↑/↓ j/k] navigate [1-9] quick select [enter] open [/] filter [esc] close"

	var content strings.Builder
	if m.recentFiltering || m.recentFilter != "" {
		filter := "Filter: " + m.recentFilter
		if m.recentFiltering {
			filter += "█"
		}
		content.WriteString(styleWarning.Render(filter) + "\n\n")
	}

	if len(records) == 0 {
		content.WriteString("No cached files yet\n\n")
		content.WriteString(styleSubtle.Render(fmt.Sprintf("Open a file with %s to cache it",
			m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenPicker))))
		return m.renderModalWithFooter("Recent Files", content.String(), footer, 70, 12)
	}

	items := filterRecent(records, m.recentFilter)
	if len(items) == 0 {
		content.WriteString(styleSubtle.Render("No matches"))
	}

	tabs := m.store.OpenTabs()
	now := time.Now()
	for i, item := range items {
		prefix := "   "
		if i < QuickSelectMax {
			prefix = fmt.Sprintf("%d. ", i+1)
		}

		suffix := "  " + humanizeAge(now.Sub(item.record.LastModified))
		if _, open := store.FindTabByName(tabs, item.record.Name); open {
			suffix += "  (open)"
		}

		if i == m.recentIndex {
			content.WriteString(styleSelected.Render(prefix+item.record.Name+suffix) + "\n")
		} else {
			content.WriteString("  " + prefix + highlightMatches(item.record.Name, item.matched) + styleSubtle.Render(suffix) + "\n")
		}
	}

	if m.errorMsg != "" {
		content.WriteString("\n" + styleError.Render(m.errorMsg))
	}

	selectedLine := m.recentIndex
	if m.recentFiltering || m.recentFilter != "" {
		selectedLine += 2
	}
	return m.renderModalWithFooterAndScroll("Recent Files", content.String(), footer, 70, 18, selectedLine)
}

// highlightMatches renders the fuzzy-matched characters of name in the match style
func highlightMatches(name string, matched []int) string {
	if len(matched) == 0 {
		return name
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range name {
		if set[i] {
			b.WriteString(styleMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func humanizeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
