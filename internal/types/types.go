package types

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// FileRecord is a cached snapshot of an ingested file
type FileRecord struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Path         string    `json:"path,omitempty" yaml:"path,omitempty"`
	Contents     string    `json:"contents" yaml:"contents"`
	Type         string    `json:"type" yaml:"type"`
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`
}

// Tab is an open file held in memory for quick switching
type Tab struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Contents string `json:"contents"`
	Type     string `json:"type"`
}

// Source tells where a Document came from
type Source int

const (
	SourceDisk Source = iota
	SourceCache
	SourceTab
)

func (s Source) String() string {
	switch s {
	case SourceDisk:
		return "disk"
	case SourceCache:
		return "cache"
	case SourceTab:
		return "tab"
	default:
		return "unknown"
	}
}

// Document is the active file reference shown in the viewer.
// Size is only meaningful when SizeKnown is true.
type Document struct {
	Name      string
	Path      string
	Type      string
	Size      int64
	SizeKnown bool
	Source    Source
}

// DocumentFromRecord builds a Document for a cached record
func DocumentFromRecord(rec FileRecord) Document {
	return Document{
		Name:      rec.Name,
		Path:      rec.Path,
		Type:      rec.Type,
		Size:      int64(len(rec.Contents)),
		SizeKnown: true,
		Source:    SourceCache,
	}
}

// DocumentFromTab builds a Document for a tab; the size of the original file is not retained
func DocumentFromTab(tab Tab) Document {
	return Document{
		Name:   tab.Name,
		Type:   tab.Type,
		Source: SourceTab,
	}
}

// NoticeKind classifies a user-visible notice
type NoticeKind string

const (
	NoticeInfo        NoticeKind = "info"
	NoticeReadFailed  NoticeKind = "read-failed"
	NoticeCacheFailed NoticeKind = "cache-failed"
	NoticeCacheMiss   NoticeKind = "cache-miss"
)

// Notice is the error indicator displayed to the user.
// Path is set when the notice refers to a file that can be read again.
type Notice struct {
	Kind      NoticeKind
	Message   string
	Path      string
	Err       error
	Retryable bool
}

// IsError reports whether the notice describes a failure
func (n Notice) IsError() bool {
	return n.Kind != NoticeInfo
}

// DetectType derives a MIME type from the file extension
func DetectType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// SniffType guesses a MIME type from the first bytes of the contents
func SniffType(contents string) string {
	sample := contents
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return http.DetectContentType([]byte(sample))
}
