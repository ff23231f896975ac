package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	"github.com/studiowebux/fileview/internal/types"
	"github.com/studiowebux/fileview/internal/workspace"
)

func TestCategorizeFileError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "nil error",
			err:      nil,
			wantText: "",
		},
		{
			name:     "no file selected",
			err:      workspace.ErrNoFileSelected,
			wantText: "No file selected - pick a file to open",
		},
		{
			name:     "missing file",
			err:      &fs.PathError{Op: "open", Path: "/tmp/gone.txt", Err: syscall.ENOENT},
			wantText: "File not found - it may have been moved or deleted",
		},
		{
			name:     "permission denied",
			err:      &fs.PathError{Op: "open", Path: "/root/secret", Err: syscall.EACCES},
			wantText: "Permission denied - check the file permissions",
		},
		{
			name:     "directory",
			err:      &fs.PathError{Op: "read", Path: "/tmp", Err: syscall.EISDIR},
			wantText: "Cannot open a directory - pick a file instead",
		},
		{
			name:     "too many open files",
			err:      &fs.PathError{Op: "open", Path: "a.txt", Err: syscall.EMFILE},
			wantText: "Too many open files - close other programs and retry",
		},
		{
			name:     "io error",
			err:      errors.New("read /mnt/share/a.txt: input/output error"),
			wantText: "I/O error - the disk or network share may be unavailable",
		},
		{
			name:     "cache locked",
			err:      fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("database is locked (5) (SQLITE_BUSY)")),
			wantText: "Cache is locked - another fileview may be running",
		},
		{
			name:     "cache table missing",
			err:      fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("no such table: files")),
			wantText: "Cache schema is missing - restart to run migrations",
		},
		{
			name:     "cache disk full",
			err:      fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("database or disk is full")),
			wantText: "Cache write failed - disk is full",
		},
		{
			name:     "cache readonly",
			err:      fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("attempt to write a readonly database")),
			wantText: "Cache is read-only - check permissions of the fileview home",
		},
		{
			name:     "cache unknown",
			err:      fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("boom")),
			wantText: "Cache error: file cache error: boom",
		},
		{
			name:     "unknown read error",
			err:      errors.New("something odd"),
			wantText: "Read failed: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeFileError(tt.err)
			if got != tt.wantText {
				t.Errorf("categorizeFileError() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestDescribeNotice(t *testing.T) {
	tests := []struct {
		name   string
		notice *types.Notice
		want   string
	}{
		{
			name:   "nil notice",
			notice: nil,
			want:   "",
		},
		{
			name: "read failure mentions retry key",
			notice: &types.Notice{
				Kind:      types.NoticeReadFailed,
				Err:       &fs.PathError{Op: "open", Path: "a.txt", Err: syscall.ENOENT},
				Retryable: true,
			},
			want: "File not found - it may have been moved or deleted (R to retry)",
		},
		{
			name: "cache failure",
			notice: &types.Notice{
				Kind: types.NoticeCacheFailed,
				Err:  fmt.Errorf("%w: %w", workspace.ErrCache, errors.New("database is locked")),
			},
			want: "Cache is locked - another fileview may be running",
		},
		{
			name:   "cache failure without error",
			notice: &types.Notice{Kind: types.NoticeCacheFailed},
			want:   "Cache error",
		},
		{
			name: "cache miss uses message",
			notice: &types.Notice{
				Kind:    types.NoticeCacheMiss,
				Message: "notes.md is no longer cached",
			},
			want: "notes.md is no longer cached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeNotice(tt.notice, "R"); got != tt.want {
				t.Errorf("describeNotice() = %q, want %q", got, tt.want)
			}
		})
	}
}
