package tui

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"

	"github.com/studiowebux/fileview/internal/types"
	"github.com/studiowebux/fileview/internal/workspace"
)

// categorizeFileError turns a read or cache failure into an actionable,
// user-friendly message
func categorizeFileError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, workspace.ErrNoFileSelected) {
		return "No file selected - pick a file to open"
	}

	if errors.Is(err, fs.ErrNotExist) {
		return "File not found - it may have been moved or deleted"
	}

	if errors.Is(err, fs.ErrPermission) {
		return "Permission denied - check the file permissions"
	}

	if errors.Is(err, workspace.ErrCache) {
		return categorizeCacheError(err)
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, syscall.EISDIR) || strings.Contains(errLower, "is a directory") {
		return "Cannot open a directory - pick a file instead"
	}

	if errors.Is(err, syscall.EMFILE) || strings.Contains(errLower, "too many open files") {
		return "Too many open files - close other programs and retry"
	}

	if errors.Is(err, syscall.EIO) || strings.Contains(errLower, "input/output error") {
		return "I/O error - the disk or network share may be unavailable"
	}

	return "Read failed: " + err.Error()
}

// categorizeCacheError explains failures of the SQLite file cache
func categorizeCacheError(err error) string {
	errLower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errLower, "database is locked") || strings.Contains(errLower, "sqlite_busy"):
		return "Cache is locked - another fileview may be running"
	case strings.Contains(errLower, "no such table"):
		return "Cache schema is missing - restart to run migrations"
	case strings.Contains(errLower, "disk is full") || strings.Contains(errLower, "no space left"):
		return "Cache write failed - disk is full"
	case strings.Contains(errLower, "readonly") || strings.Contains(errLower, "read-only"):
		return "Cache is read-only - check permissions of the fileview home"
	case strings.Contains(errLower, "unable to open"):
		return "Cache could not be opened - check the fileview home directory"
	default:
		return "Cache error: " + err.Error()
	}
}

// describeNotice renders a notice for the status bar
func describeNotice(n *types.Notice, retryKey string) string {
	if n == nil {
		return ""
	}

	switch n.Kind {
	case types.NoticeReadFailed:
		return categorizeFileError(n.Err) + " (" + retryKey + " to retry)"
	case types.NoticeCacheFailed:
		if n.Err != nil {
			return categorizeFileError(n.Err)
		}
		return "Cache error"
	default:
		return n.Message
	}
}
