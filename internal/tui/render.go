package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/fileview/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(colorCyan)

	styleTabInactive = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorGray)
)

// renderMain renders the tab bar, the viewer and the status bar
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	borderColor := colorGray
	if m.store.ActiveFile() != nil {
		borderColor = colorGreen
	}

	viewerBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.width - ViewportBorderWidth).
		Render(m.viewer.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabBar(),
		viewerBox,
		m.renderStatusBar(),
	)
}

// renderTabBar renders one label per open tab. When the labels are wider
// than the screen, the leading tabs are dropped until the active one fits.
func (m Model) renderTabBar() string {
	tabs := m.store.OpenTabs()
	if len(tabs) == 0 {
		return styleSubtle.Render("No open tabs")
	}

	active := m.activeTabIndex(tabs)
	labels := make([]string, len(tabs))
	for i, tab := range tabs {
		label := tab.Name
		if i < QuickSelectMax {
			label = fmt.Sprintf("%d:%s", i+1, tab.Name)
		}
		if i == active {
			labels[i] = styleTabActive.Render(label)
		} else {
			labels[i] = styleTabInactive.Render(label)
		}
	}

	start := 0
	for start < active && lipgloss.Width(strings.Join(labels[start:active+1], " ")) > m.width-2 {
		start++
	}

	bar := strings.Join(labels[start:], " ")
	if start > 0 {
		bar = styleSubtle.Render("‹ ") + bar
	}
	if lipgloss.Width(bar) > m.width {
		bar = lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
	}
	return bar
}

// renderStatusBar shows the active document on the left and messages on the right
func (m Model) renderStatusBar() string {
	snap := m.store.Snapshot()

	var parts []string
	if doc := snap.ActiveFile; doc != nil {
		name, mimeType := m.displayed(snap)
		parts = append(parts, name)
		if mimeType != "" {
			parts = append(parts, mimeType)
		}
		if name == doc.Name {
			if doc.SizeKnown {
				parts = append(parts, humanSize(doc.Size))
			}
			parts = append(parts, doc.Source.String())
		}
		if snap.HasContents {
			if isBinary(snap.ActiveContents) {
				parts = append(parts, styleWarning.Render("binary"))
			}
			if lang := m.languageLabel(); lang != "" {
				parts = append(parts, lang)
			}
		}
	}
	left := strings.Join(parts, " · ")

	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case snap.Notice != nil:
		text := describeNotice(snap.Notice, m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionRetry))
		if snap.Notice.IsError() {
			right = styleError.Render(text)
		} else {
			right = styleWarning.Render(text)
		}
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	default:
		right = styleSubtle.Render(fmt.Sprintf("%s open | %s recent | %s help | %s quit",
			m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenPicker),
			m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenRecent),
			m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenHelp),
			m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionQuit),
		))
	}

	// MaxWidth(0) means unlimited
	if room := m.width - lipgloss.Width(right) - 1; room <= 0 {
		left = ""
	} else if lipgloss.Width(left) > room {
		left = lipgloss.NewStyle().MaxWidth(room).Render(left)
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	bar := left + strings.Repeat(" ", spacing) + right
	if lipgloss.Width(bar) > m.width {
		bar = lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
	}
	return bar
}

// renderWelcome is shown in the viewer before any file is selected
func (m *Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("fileview") + "\n\n")
	b.WriteString("No file selected.\n\n")
	b.WriteString(fmt.Sprintf("  %-12s open a file\n", m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenPicker)))
	b.WriteString(fmt.Sprintf("  %-12s recent files\n", m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenRecent)))
	b.WriteString(fmt.Sprintf("  %-12s all shortcuts\n", m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpenHelp)))

	if n := len(m.store.RecentFiles()); n > 0 {
		b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("%d cached files", n)))
	}
	return b.String()
}

var helpSections = []struct {
	title   string
	context keybinds.Context
}{
	{"VIEWER", keybinds.ContextNormal},
	{"FILE PICKER", keybinds.ContextPicker},
	{"RECENT FILES", keybinds.ContextRecent},
	{"RECENT FILTER", keybinds.ContextRecentFilter},
	{"HELP", keybinds.ContextHelp},
	{"EVERYWHERE", keybinds.ContextGlobal},
}

// updateHelpView lists the bindings of every context, reflecting user overrides
func (m *Model) updateHelpView() {
	var b strings.Builder
	b.WriteString("fileview - Keyboard Shortcuts\n")

	for _, section := range helpSections {
		b.WriteString("\n" + section.title + "\n")

		seen := make(map[keybinds.Action]bool)
		for _, binding := range m.keys.ListBindings(section.context) {
			if seen[binding.Action] || binding.Action == keybinds.ActionGoToTopPrepare {
				continue
			}
			seen[binding.Action] = true

			keys := strings.Join(m.keys.GetBinding(section.context, binding.Action), "/")
			b.WriteString(fmt.Sprintf("  %-18s %s\n", keys, keybinds.GetActionInfo(binding.Action).Description))
		}
		if section.context == keybinds.ContextNormal || section.context == keybinds.ContextRecent {
			b.WriteString(fmt.Sprintf("  %-18s %s\n", "1-9", "Quick select"))
		}
	}

	m.helpView.SetContent(b.String())
}

// humanSize formats a byte count
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
