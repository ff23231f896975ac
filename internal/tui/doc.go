/*
Package tui implements the terminal user interface for fileview.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - Model: UI-only state (mode, viewports, recent list cursor, status line)
  - Update: processes messages and returns commands
  - View: renders the current state and the store snapshot

Viewer state (active file, contents, tabs, recent files, notice) is owned
by store.Store and mutated only through workspace.Workspace. The model never
keeps its own copy; every render reads a fresh snapshot.

# Asynchronous work

File reads and cache queries run as tea.Cmd functions and come back as
messages:
  - fileReadMsg: result of workspace.Read, applied with Complete
  - recentLookupMsg: result of LookupRecent, applied with ApplyOpen
  - recentLoadedMsg: result of QueryRecent, applied with ApplyRecent

# Files

  - model.go: Model, Init, Update, View and message types
  - init.go: construction and Run
  - keys.go: key routing through the keybinds registry
  - commands.go: tea.Cmd builders and tab/clipboard actions
  - recent_modal.go: recent files list with fuzzy filter
  - render.go: main layout, tab bar, status bar, help
  - modals.go: modal frame, help screen and file picker view
  - error_categorizer.go: user-facing messages for notices and errors
*/
package tui
