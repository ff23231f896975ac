package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal       Context = "global"        // Available everywhere
	ContextNormal       Context = "normal"        // Viewer with tab bar
	ContextPicker       Context = "picker"        // File picker overlay
	ContextRecent       Context = "recent"        // Recent files list
	ContextRecentFilter Context = "recent_filter" // Typing a fuzzy filter in the recent list
	ContextHelp         Context = "help"          // Help overlay
)

// Contexts lists every context in display order
var Contexts = []Context{
	ContextGlobal,
	ContextNormal,
	ContextPicker,
	ContextRecent,
	ContextRecentFilter,
	ContextHelp,
}

const (
	// Global
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"

	// Navigation
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"
	ActionHalfPageUp     Action = "half_page_up"
	ActionHalfPageDown   Action = "half_page_down"
	ActionGoToTop        Action = "go_to_top"
	ActionGoToBottom     Action = "go_to_bottom"
	ActionGoToTopPrepare Action = "go_to_top_prepare" // first 'g' of 'gg'

	// Overlays
	ActionOpenPicker Action = "open_picker"
	ActionOpenRecent Action = "open_recent"
	ActionOpenHelp   Action = "open_help"
	ActionCloseModal Action = "close_modal"

	// Tabs
	ActionNextTab  Action = "next_tab"
	ActionPrevTab  Action = "prev_tab"
	ActionCloseTab Action = "close_tab"

	// Viewer
	ActionCopyContents      Action = "copy_contents"
	ActionCycleTheme        Action = "cycle_theme"
	ActionToggleLineNumbers Action = "toggle_line_numbers"
	ActionToggleWrap        Action = "toggle_wrap"
	ActionRetry             Action = "retry"
	ActionDismissNotice     Action = "dismiss_notice"
	ActionRefreshRecent     Action = "refresh_recent"

	// Recent list
	ActionOpenSelected Action = "open_selected"
	ActionStartFilter  Action = "start_filter"
	ActionClearFilter  Action = "clear_filter"

	// Filter input
	ActionTextBackspace Action = "text_backspace"
	ActionTextSubmit    Action = "text_submit"
	ActionTextCancel    Action = "text_cancel"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:              {ActionQuit, "Quit", "Global"},
	ActionQuitForce:         {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:        {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:      {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:            {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:          {ActionPageDown, "Page down", "Navigation"},
	ActionHalfPageUp:        {ActionHalfPageUp, "Half page up", "Navigation"},
	ActionHalfPageDown:      {ActionHalfPageDown, "Half page down", "Navigation"},
	ActionGoToTop:           {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:        {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionGoToTopPrepare:    {ActionGoToTopPrepare, "Start 'gg'", "Navigation"},
	ActionOpenPicker:        {ActionOpenPicker, "Open a file", "Files"},
	ActionOpenRecent:        {ActionOpenRecent, "Recent files", "Files"},
	ActionOpenHelp:          {ActionOpenHelp, "Help", "Global"},
	ActionCloseModal:        {ActionCloseModal, "Close", "Global"},
	ActionNextTab:           {ActionNextTab, "Next tab", "Tabs"},
	ActionPrevTab:           {ActionPrevTab, "Previous tab", "Tabs"},
	ActionCloseTab:          {ActionCloseTab, "Close tab", "Tabs"},
	ActionCopyContents:      {ActionCopyContents, "Copy contents", "Viewer"},
	ActionCycleTheme:        {ActionCycleTheme, "Next theme", "Viewer"},
	ActionToggleLineNumbers: {ActionToggleLineNumbers, "Toggle line numbers", "Viewer"},
	ActionToggleWrap:        {ActionToggleWrap, "Toggle wrap", "Viewer"},
	ActionRetry:             {ActionRetry, "Retry failed read", "Viewer"},
	ActionDismissNotice:     {ActionDismissNotice, "Dismiss message", "Viewer"},
	ActionRefreshRecent:     {ActionRefreshRecent, "Reload recent files", "Files"},
	ActionOpenSelected:      {ActionOpenSelected, "Open selected", "Recent"},
	ActionStartFilter:       {ActionStartFilter, "Filter", "Recent"},
	ActionClearFilter:       {ActionClearFilter, "Clear filter", "Recent"},
	ActionTextBackspace:     {ActionTextBackspace, "Delete character", "Filter"},
	ActionTextSubmit:        {ActionTextSubmit, "Apply filter", "Filter"},
	ActionTextCancel:        {ActionTextCancel, "Cancel filter", "Filter"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one fileview understands
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
