package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := "↑/↓ j/k: scroll | ESC/?/q: close"

	// Footer is outside the viewport so it stays visible
	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - ModalWidthMargin).
		Height(m.height - ModalHeightMarginSmall).
		Padding(0, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}

// renderPicker renders the file picker full screen
func (m Model) renderPicker() string {
	title := styleTitle.Render("Open File")
	dir := styleSubtle.Render(m.picker.CurrentDirectory)
	footer := styleSubtle.Render("↑/↓ j/k: navigate | enter/l: open | h/backspace: parent | q/ctrl+o: close")

	body := title + "\n" + dir + "\n" + m.picker.View() + "\n" + footer
	if m.errorMsg != "" {
		body += "\n" + styleError.Render(m.errorMsg)
	}
	return body
}

// renderModalWithFooter renders a modal dialog with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal with footer and auto-scrolls to keep selectedLine visible
// Pass selectedLine=-1 to preserve existing scroll position
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall

	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}

	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	// Title (2 lines), padding (2) and border (2), plus blank + footer
	footerLines := 0
	if footer != "" {
		footerLines = ModalFooterLines
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	// SetContent resets the offset
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)

	if selectedLine >= 0 && m.modalView.Height > 0 {
		topVisible := savedOffset
		bottomVisible := savedOffset + m.modalView.Height - 1

		switch {
		case selectedLine < topVisible:
			m.modalView.SetYOffset(selectedLine)
		case selectedLine > bottomVisible:
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		default:
			m.modalView.SetYOffset(savedOffset)
		}
	} else {
		m.modalView.SetYOffset(savedOffset)
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	// Nearly full screen modals are not centered
	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}
