package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap"
)

// PendingRead is a selected file whose contents are not read yet
type PendingRead struct {
	Document types.Document
}

// ReadResult is the outcome of reading a PendingRead
type ReadResult struct {
	Document types.Document
	Contents string
	Err      error
}

// Select handles a file selection. The active file is set immediately and the
// active contents become unavailable until Complete runs.
func (w *Workspace) Select(path string) (PendingRead, error) {
	if path == "" {
		w.logger.Info("no file selected")
		return PendingRead{}, ErrNoFileSelected
	}

	doc := types.Document{
		Name:   filepath.Base(path),
		Path:   path,
		Type:   types.DetectType(path),
		Source: types.SourceDisk,
	}
	if info, err := w.stat(path); err == nil {
		doc.Size = info.Size()
		doc.SizeKnown = true
	}

	w.store.SetActiveFile(&doc)
	w.store.ClearActiveContents()
	w.store.SetNotice(nil)

	w.logger.Debug("file selected", zap.String("path", path))
	return PendingRead{Document: doc}, nil
}

// Read reads the pending file as text. It blocks and touches no state, so it
// may run off the event loop.
func (w *Workspace) Read(p PendingRead) ReadResult {
	data, err := w.readFile(p.Document.Path)
	if err != nil {
		return ReadResult{Document: p.Document, Err: fmt.Errorf("failed to read %s: %w", p.Document.Name, err)}
	}
	return ReadResult{Document: p.Document, Contents: string(data)}
}

// Complete applies a finished read: contents, a new tab and a new cache record.
// A failed read leaves the active file set, sets a retryable notice and
// inserts nothing.
func (w *Workspace) Complete(res ReadResult) error {
	doc := res.Document

	if w.Closed() {
		w.logger.Warn("dropping read completion after close", zap.String("path", doc.Path))
		return ErrClosed
	}

	if res.Err != nil {
		w.logger.Warn("file read failed", zap.String("path", doc.Path), zap.Error(res.Err))
		w.setNotice(types.NoticeReadFailed, doc.Path, res.Err, true)
		return res.Err
	}

	fileType := doc.Type
	if fileType == "" {
		fileType = types.SniffType(res.Contents)
	}

	w.store.SetActiveContents(res.Contents)

	tab := types.Tab{
		ID:       w.store.NextTabID(),
		Name:     doc.Name,
		Contents: res.Contents,
		Type:     fileType,
	}
	w.store.SetOpenTabs(store.AppendTab(w.store.OpenTabs(), tab))

	rec, err := w.cache.Add(types.FileRecord{
		Name:         doc.Name,
		Path:         doc.Path,
		Contents:     res.Contents,
		Type:         fileType,
		LastModified: w.now(),
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCache, err)
		w.logger.Error("file record insert failed", zap.String("name", doc.Name), zap.Error(err))
		w.setNotice(types.NoticeCacheFailed, "", err, false)
		return err
	}

	w.logger.Info("file ingested",
		zap.String("name", doc.Name),
		zap.Int64("record_id", rec.ID),
		zap.Int64("tab_id", tab.ID),
		zap.Int("bytes", len(res.Contents)),
	)

	w.applyRetention()

	if w.refreshRecent {
		if err := w.LoadRecent(); err != nil {
			return err
		}
	}

	return nil
}

// Ingest selects, reads and completes a file synchronously
func (w *Workspace) Ingest(path string) error {
	pending, err := w.Select(path)
	if err != nil {
		return err
	}
	return w.Complete(w.Read(pending))
}

// Retry selects the file named by the current retryable notice again.
// The caller reads and completes it like any other selection.
func (w *Workspace) Retry() (PendingRead, error) {
	notice := w.store.Notice()
	if notice == nil || !notice.Retryable || notice.Path == "" {
		return PendingRead{}, ErrNothingToRetry
	}
	w.logger.Info("retrying file read", zap.String("path", notice.Path))
	return w.Select(notice.Path)
}

func (w *Workspace) applyRetention() {
	if w.retention.MaxRecords <= 0 && w.retention.MaxAge <= 0 {
		return
	}
	pruner, ok := w.cache.(Pruner)
	if !ok {
		return
	}
	if _, err := pruner.Prune(w.retention, w.now()); err != nil {
		w.logger.Warn("file cache retention failed", zap.Error(err))
	}
}
