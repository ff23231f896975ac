package store

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/studiowebux/fileview/internal/types"
)

// Slice identifies one independently replaceable part of the state
type Slice int

const (
	SliceActiveFile Slice = iota
	SliceActiveContents
	SliceOpenTabs
	SliceRecentFiles
	SliceNotice
)

func (s Slice) String() string {
	switch s {
	case SliceActiveFile:
		return "active-file"
	case SliceActiveContents:
		return "active-contents"
	case SliceOpenTabs:
		return "open-tabs"
	case SliceRecentFiles:
		return "recent-files"
	case SliceNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the state handed to readers.
// Mutating its slices never affects the store.
type Snapshot struct {
	ActiveFile     *types.Document
	ActiveContents string
	HasContents    bool
	OpenTabs       []types.Tab
	RecentFiles    []types.FileRecord
	Notice         *types.Notice
	Revision       uint64
}

// Listener is notified after every setter call with the slice that changed
type Listener func(changed Slice, snap Snapshot)

type subscription struct {
	id       string
	listener Listener
}

// Store is the single source of truth for the viewer state.
// Every setter replaces its slice wholesale; no setter touches another slice.
type Store struct {
	mu sync.RWMutex

	activeFile     *types.Document
	activeContents string
	hasContents    bool
	openTabs       []types.Tab
	recentFiles    []types.FileRecord
	notice         *types.Notice

	revision  uint64
	nextTabID int64

	subs      []subscription
	pending   []change
	notifying bool
}

type change struct {
	slice Slice
	snap  Snapshot
}

// New creates an empty store
func New() *Store {
	return &Store{
		openTabs:    []types.Tab{},
		recentFiles: []types.FileRecord{},
	}
}

// Subscribe registers a listener and returns its subscription id
func (s *Store) Subscribe(listener Listener) string {
	if listener == nil {
		return ""
	}
	id := ulid.Make().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, subscription{id: id, listener: listener})
	return id
}

// Unsubscribe removes a listener; unknown ids are ignored
func (s *Store) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.id != id {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
}

// NextTabID returns a session-unique tab id
func (s *Store) NextTabID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTabID++
	return s.nextTabID
}

// SetActiveFile replaces the active file reference (nil clears it)
func (s *Store) SetActiveFile(doc *types.Document) {
	s.update(SliceActiveFile, func() {
		if doc == nil {
			s.activeFile = nil
			return
		}
		d := *doc
		s.activeFile = &d
	})
}

// SetActiveContents replaces the active contents and marks them available
func (s *Store) SetActiveContents(contents string) {
	s.update(SliceActiveContents, func() {
		s.activeContents = contents
		s.hasContents = true
	})
}

// ClearActiveContents marks the active contents as absent
func (s *Store) ClearActiveContents() {
	s.update(SliceActiveContents, func() {
		s.activeContents = ""
		s.hasContents = false
	})
}

// SetOpenTabs replaces the open tab list
func (s *Store) SetOpenTabs(tabs []types.Tab) {
	s.update(SliceOpenTabs, func() {
		s.openTabs = cloneTabs(tabs)
	})
}

// SetRecentFiles replaces the recent files list
func (s *Store) SetRecentFiles(records []types.FileRecord) {
	s.update(SliceRecentFiles, func() {
		s.recentFiles = cloneRecords(records)
	})
}

// SetNotice replaces the user-visible notice (nil clears it)
func (s *Store) SetNotice(notice *types.Notice) {
	s.update(SliceNotice, func() {
		if notice == nil {
			s.notice = nil
			return
		}
		n := *notice
		s.notice = &n
	})
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ActiveFile returns a copy of the active file reference, or nil
func (s *Store) ActiveFile() *types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeFile == nil {
		return nil
	}
	d := *s.activeFile
	return &d
}

// ActiveContents returns the active contents and whether they are available
func (s *Store) ActiveContents() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeContents, s.hasContents
}

// OpenTabs returns a copy of the open tab list
func (s *Store) OpenTabs() []types.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTabs(s.openTabs)
}

// RecentFiles returns a copy of the recent files list
func (s *Store) RecentFiles() []types.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.recentFiles)
}

// Notice returns a copy of the current notice, or nil
func (s *Store) Notice() *types.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.notice == nil {
		return nil
	}
	n := *s.notice
	return &n
}

// update applies fn under the write lock and queues the resulting snapshot.
// Listeners run outside the lock, so a listener may read the store or call
// setters. One caller at a time drains the queue, which keeps notifications
// in revision order; a setter that finds a drain in progress returns before
// its snapshot is delivered.
func (s *Store) update(changed Slice, fn func()) {
	s.mu.Lock()
	fn()
	s.revision++
	s.pending = append(s.pending, change{slice: changed, snap: s.snapshotLocked()})
	if s.notifying {
		s.mu.Unlock()
		return
	}
	s.notifying = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]subscription, len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.listener(next.slice, next.snap)
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.notifying = false
	s.mu.Unlock()
}

// snapshotLocked builds a snapshot (must be called with lock held)
func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		ActiveContents: s.activeContents,
		HasContents:    s.hasContents,
		OpenTabs:       cloneTabs(s.openTabs),
		RecentFiles:    cloneRecords(s.recentFiles),
		Revision:       s.revision,
	}
	if s.activeFile != nil {
		d := *s.activeFile
		snap.ActiveFile = &d
	}
	if s.notice != nil {
		n := *s.notice
		snap.Notice = &n
	}
	return snap
}

func cloneTabs(tabs []types.Tab) []types.Tab {
	out := make([]types.Tab, len(tabs))
	copy(out, tabs)
	return out
}

func cloneRecords(records []types.FileRecord) []types.FileRecord {
	out := make([]types.FileRecord, len(records))
	copy(out, records)
	return out
}
