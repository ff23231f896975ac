package tui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/fileview/internal/config"
	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/keybinds"
	"github.com/studiowebux/fileview/internal/logging"
	"github.com/studiowebux/fileview/internal/session"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/workspace"
	"go.uber.org/zap"
)

// Options wires the model to its collaborators
type Options struct {
	Workspace   *workspace.Workspace
	Keys        *keybinds.Registry
	Renderer    *highlight.Renderer
	Session     *session.Manager
	Logger      *zap.Logger
	StartDir    string
	InitialFile string
}

// New creates a new TUI model
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("tui")

	keys := opts.Keys
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	renderer := opts.Renderer
	if renderer == nil {
		def := config.DefaultSettings().Viewer
		renderer = highlight.New(def.Theme, def.LineNumbers, def.Wrap)
	}

	fp := filepicker.New()
	fp.CurrentDirectory = opts.StartDir
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = true

	m := Model{
		ws:            opts.Workspace,
		store:         opts.Workspace.Store(),
		keys:          keys,
		renderer:      renderer,
		sessionMgr:    opts.Session,
		logger:        logger,
		copyFn:        clipboard.WriteAll,
		mode:          ModeNormal,
		initialFile:   opts.InitialFile,
		viewer:        viewport.New(80, 20),
		helpView:      viewport.New(80, 20),
		modalView:     viewport.New(80, 20),
		picker:        fp,
		statusTimeout: StatusMessageTimeout,
	}

	m.subID = m.store.Subscribe(func(changed store.Slice, snap store.Snapshot) {
		logger.Debug("state changed",
			zap.Stringer("slice", changed),
			zap.Uint64("revision", snap.Revision),
			zap.Int("open_tabs", len(snap.OpenTabs)),
		)
	})

	return m
}

// RunOptions configures Run
type RunOptions struct {
	Home        string
	LogLevel    string
	InitialFile string
}

// Run starts the TUI
func Run(opts RunOptions) error {
	if err := config.Initialize(opts.Home); err != nil {
		return err
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		return err
	}
	level := settings.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	logger, err := logging.New(level, config.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	mgr := session.NewManager(config.SessionFile)
	if err := mgr.Load(); err != nil {
		return err
	}

	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	cache, err := filecache.NewManager(config.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	viewer := mgr.ApplyViewer(settings.Viewer)
	st := store.New()
	ws := workspace.New(st, cache, workspace.Options{
		Logger:                logger,
		RecentLimit:           settings.Recent.Limit,
		RefreshRecentOnIngest: settings.Recent.RefreshOnIngest,
		Retention:             filecache.PolicyFromSettings(settings.Cache),
	})

	m := New(Options{
		Workspace:   ws,
		Keys:        keys,
		Renderer:    highlight.New(viewer.Theme, viewer.LineNumbers, viewer.Wrap),
		Session:     mgr,
		Logger:      logger,
		StartDir:    startDirectory(mgr),
		InitialFile: opts.InitialFile,
	})
	defer m.Cleanup()

	logger.Info("fileview started", zap.String("home", config.ConfigDir))

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	logger.Info("fileview stopped")
	return nil
}

// startDirectory is the last picker directory when it still exists, else
// the working directory
func startDirectory(mgr *session.Manager) string {
	if dir := mgr.Get().LastDirectory; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
