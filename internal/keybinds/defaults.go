package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalBindings(r)
	registerPickerBindings(r)
	registerRecentBindings(r)
	registerRecentFilterBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNavigationBindings adds scroll keys to a context
func registerNavigationBindings(r *Registry, ctx Context) {
	r.RegisterMultiple(ctx, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ctx, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ctx, "pgup", ActionPageUp)
	r.Register(ctx, "pgdown", ActionPageDown)
	r.Register(ctx, "ctrl+u", ActionHalfPageUp)
	r.Register(ctx, "ctrl+d", ActionHalfPageDown)
	r.Register(ctx, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ctx, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ctx, []string{"G", "end"}, ActionGoToBottom)
}

func registerNormalBindings(r *Registry) {
	registerNavigationBindings(r, ContextNormal)

	r.RegisterMultiple(ContextNormal, []string{"q"}, ActionQuit)
	r.RegisterMultiple(ContextNormal, []string{"o", "ctrl+o"}, ActionOpenPicker)
	r.RegisterMultiple(ContextNormal, []string{"r"}, ActionOpenRecent)
	r.Register(ContextNormal, "?", ActionOpenHelp)

	r.RegisterMultiple(ContextNormal, []string{"tab", "l", "]"}, ActionNextTab)
	r.RegisterMultiple(ContextNormal, []string{"shift+tab", "h", "["}, ActionPrevTab)
	r.RegisterMultiple(ContextNormal, []string{"x", "ctrl+w"}, ActionCloseTab)

	r.Register(ContextNormal, "c", ActionCopyContents)
	r.Register(ContextNormal, "t", ActionCycleTheme)
	r.Register(ContextNormal, "n", ActionToggleLineNumbers)
	r.Register(ContextNormal, "w", ActionToggleWrap)
	r.Register(ContextNormal, "R", ActionRetry)
	r.Register(ContextNormal, "esc", ActionDismissNotice)
	r.Register(ContextNormal, "ctrl+r", ActionRefreshRecent)
}

// the picker handles its own navigation keys; only the close keys are ours
func registerPickerBindings(r *Registry) {
	r.RegisterMultiple(ContextPicker, []string{"q", "ctrl+o"}, ActionCloseModal)
}

func registerRecentBindings(r *Registry) {
	r.RegisterMultiple(ContextRecent, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextRecent, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextRecent, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextRecent, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextRecent, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextRecent, "enter", ActionOpenSelected)
	r.Register(ContextRecent, "/", ActionStartFilter)
	r.Register(ContextRecent, "backspace", ActionClearFilter)
	r.Register(ContextRecent, "ctrl+r", ActionRefreshRecent)
	r.RegisterMultiple(ContextRecent, []string{"esc", "q", "r"}, ActionCloseModal)
}

func registerRecentFilterBindings(r *Registry) {
	r.Register(ContextRecentFilter, "backspace", ActionTextBackspace)
	r.Register(ContextRecentFilter, "enter", ActionTextSubmit)
	r.Register(ContextRecentFilter, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextRecentFilter, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextRecentFilter, []string{"down", "ctrl+n"}, ActionNavigateDown)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
}
