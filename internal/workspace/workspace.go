package workspace

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap"
)

// Cache is the persistent file cache consumed by the workspace
type Cache interface {
	Add(rec types.FileRecord) (types.FileRecord, error)
	FirstByName(name string) (*types.FileRecord, error)
	Recent(limit int) ([]types.FileRecord, error)
}

// Pruner is implemented by caches that support a retention policy
type Pruner interface {
	Prune(policy filecache.RetentionPolicy, now time.Time) (int64, error)
}

// DefaultRecentLimit is the size of the recent files list
const DefaultRecentLimit = 5

// Options configures a Workspace. Zero values pick the defaults.
type Options struct {
	Logger                *zap.Logger
	RecentLimit           int
	RefreshRecentOnIngest bool
	Retention             filecache.RetentionPolicy

	ReadFile func(path string) ([]byte, error)
	Stat     func(path string) (os.FileInfo, error)
	Now      func() time.Time
}

// Workspace runs ingestion, tab lifecycle and recent-file loading against a store
type Workspace struct {
	store  *store.Store
	cache  Cache
	logger *zap.Logger

	recentLimit   int
	refreshRecent bool
	retention     filecache.RetentionPolicy

	readFile func(path string) ([]byte, error)
	stat     func(path string) (os.FileInfo, error)
	now      func() time.Time

	closed atomic.Bool
}

// New creates a workspace over st backed by cache
func New(st *store.Store, cache Cache, opts Options) *Workspace {
	w := &Workspace{
		store:         st,
		cache:         cache,
		logger:        opts.Logger,
		recentLimit:   opts.RecentLimit,
		refreshRecent: opts.RefreshRecentOnIngest,
		retention:     opts.Retention,
		readFile:      opts.ReadFile,
		stat:          opts.Stat,
		now:           opts.Now,
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	w.logger = w.logger.Named("workspace")
	if w.recentLimit <= 0 {
		w.recentLimit = DefaultRecentLimit
	}
	if w.readFile == nil {
		w.readFile = os.ReadFile
	}
	if w.stat == nil {
		w.stat = os.Stat
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w
}

// Store returns the state store the workspace writes to
func (w *Workspace) Store() *store.Store {
	return w.store
}

// RecentLimit returns the configured size of the recent list
func (w *Workspace) RecentLimit() int {
	return w.recentLimit
}

// Close marks the workspace as torn down; later completions are dropped
func (w *Workspace) Close() {
	w.closed.Store(true)
}

// Closed reports whether Close was called
func (w *Workspace) Closed() bool {
	return w.closed.Load()
}

// DismissNotice clears the current notice
func (w *Workspace) DismissNotice() {
	w.store.SetNotice(nil)
}

func (w *Workspace) setNotice(kind types.NoticeKind, path string, err error, retryable bool) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	w.store.SetNotice(&types.Notice{
		Kind:      kind,
		Message:   msg,
		Path:      path,
		Err:       err,
		Retryable: retryable,
	})
}
