package workspace

import (
	"fmt"

	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap"
)

// OpenOutcome describes what opening a recent file did
type OpenOutcome int

const (
	// OpenMissed means no cache record had the name; state is unchanged
	OpenMissed OpenOutcome = iota
	// OpenSwitched means a tab with the name was already open; only the contents changed
	OpenSwitched
	// OpenedTab means a new tab was appended and made active
	OpenedTab
)

func (o OpenOutcome) String() string {
	switch o {
	case OpenMissed:
		return "missed"
	case OpenSwitched:
		return "switched"
	case OpenedTab:
		return "opened"
	default:
		return "unknown"
	}
}

// LookupRecent queries the cache for the first record with the name.
// It touches no state, so it may run off the event loop.
func (w *Workspace) LookupRecent(name string) (*types.FileRecord, error) {
	rec, err := w.cache.FirstByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}
	return rec, nil
}

// ApplyOpen applies the result of LookupRecent for name
func (w *Workspace) ApplyOpen(name string, rec *types.FileRecord, lookupErr error) (OpenOutcome, error) {
	if w.Closed() {
		w.logger.Warn("dropping recent lookup after close", zap.String("name", name))
		return OpenMissed, ErrClosed
	}

	if lookupErr != nil {
		w.logger.Error("recent file lookup failed", zap.String("name", name), zap.Error(lookupErr))
		w.setNotice(types.NoticeCacheFailed, "", lookupErr, false)
		return OpenMissed, lookupErr
	}

	if rec == nil {
		w.logger.Info("recent file not in cache", zap.String("name", name))
		w.setNotice(types.NoticeCacheMiss, "", fmt.Errorf("%s is no longer cached", name), false)
		return OpenMissed, nil
	}

	tabs := w.store.OpenTabs()
	if tab, ok := store.FindTabByName(tabs, rec.Name); ok {
		w.store.SetActiveContents(tab.Contents)
		return OpenSwitched, nil
	}

	doc := types.DocumentFromRecord(*rec)
	w.store.SetActiveFile(&doc)
	w.store.SetActiveContents(rec.Contents)

	tab := types.Tab{
		ID:       w.store.NextTabID(),
		Name:     rec.Name,
		Contents: rec.Contents,
		Type:     rec.Type,
	}
	w.store.SetOpenTabs(store.AppendTab(tabs, tab))

	w.logger.Debug("recent file opened", zap.String("name", rec.Name), zap.Int64("tab_id", tab.ID))
	return OpenedTab, nil
}

// OpenRecent looks a recent file up by name and opens it
func (w *Workspace) OpenRecent(name string) (OpenOutcome, error) {
	rec, err := w.LookupRecent(name)
	return w.ApplyOpen(name, rec, err)
}

// SelectTab restores the active file and contents from an open tab
func (w *Workspace) SelectTab(id int64) bool {
	tab, ok := store.FindTab(w.store.OpenTabs(), id)
	if !ok {
		return false
	}
	doc := types.DocumentFromTab(tab)
	w.store.SetActiveFile(&doc)
	w.store.SetActiveContents(tab.Contents)
	return true
}

// CloseTab removes a tab. The last remaining tab becomes active; with no
// tabs left the active file and contents are cleared.
func (w *Workspace) CloseTab(id int64) bool {
	remaining, found := store.RemoveTab(w.store.OpenTabs(), id)
	if !found {
		return false
	}

	if len(remaining) == 0 {
		w.store.SetActiveFile(nil)
		w.store.ClearActiveContents()
	} else {
		last := remaining[len(remaining)-1]
		doc := types.Document{Name: last.Name, Source: types.SourceTab}
		w.store.SetActiveFile(&doc)
		w.store.SetActiveContents(last.Contents)
	}

	w.store.SetOpenTabs(remaining)
	return true
}
