package workspace

import (
	"fmt"

	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap"
)

// QueryRecent fetches the most recently modified records.
// It touches no state, so it may run off the event loop.
func (w *Workspace) QueryRecent() ([]types.FileRecord, error) {
	records, err := w.cache.Recent(w.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}
	if len(records) > w.recentLimit {
		records = records[:w.recentLimit]
	}
	return records, nil
}

// ApplyRecent replaces the recent list. On failure the list is kept and a
// notice is set.
func (w *Workspace) ApplyRecent(records []types.FileRecord, queryErr error) error {
	if w.Closed() {
		return ErrClosed
	}
	if queryErr != nil {
		w.logger.Error("recent files query failed", zap.Error(queryErr))
		w.setNotice(types.NoticeCacheFailed, "", queryErr, false)
		return queryErr
	}
	w.store.SetRecentFiles(records)
	return nil
}

// LoadRecent queries and applies the recent list
func (w *Workspace) LoadRecent() error {
	records, err := w.QueryRecent()
	return w.ApplyRecent(records, err)
}
