package tui

import "time"

// UI Layout Constants

const (
	// Modal dimensions
	ModalWidthMargin       = 6 // m.width - 6
	ModalHeightMarginSmall = 2 // m.height - 2

	// Viewport padding and borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Main layout rows outside the viewer box
	TabBarHeight    = 1
	StatusBarHeight = 1

	// Modal content calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals
	ModalFooterLines     = 2 // Footer + blank line

	// Status bar
	MaxStatusLength      = 100
	StatusMessageTimeout = 3 * time.Second

	// Bytes inspected when guessing a language or binary contents
	ContentSampleBytes = 4096

	// Quick select keys 1-9 in the recent list and tab bar
	QuickSelectMax = 9
)
