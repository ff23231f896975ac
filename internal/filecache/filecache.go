package filecache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/fileview/internal/config"
	"github.com/studiowebux/fileview/internal/migrations"
	"github.com/studiowebux/fileview/internal/types"
	"go.uber.org/zap"
)

// RetentionPolicy bounds the size of the cache. Zero values disable a limit.
type RetentionPolicy struct {
	MaxRecords int
	MaxAge     time.Duration
}

// PolicyFromSettings converts config settings into a retention policy
func PolicyFromSettings(s config.CacheSettings) RetentionPolicy {
	return RetentionPolicy{MaxRecords: s.MaxRecords, MaxAge: s.MaxAge}
}

// Manager stores file snapshots in SQLite
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewManager(dbPath string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite serializes writers; one connection keeps that explicit
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, logger: logger.Named("filecache")}, nil
}

// Add inserts a new record and returns it with its assigned id.
// Records are never deduplicated by name.
func (m *Manager) Add(rec types.FileRecord) (types.FileRecord, error) {
	if rec.LastModified.IsZero() {
		rec.LastModified = time.Now()
	}

	query := `
		INSERT INTO files (name, contents, type, last_modified, path)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := m.db.Exec(query,
		rec.Name,
		rec.Contents,
		rec.Type,
		rec.LastModified.UnixMilli(),
		rec.Path,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to save file record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("failed to read file record id: %w", err)
	}
	rec.ID = id

	m.logger.Debug("file record saved",
		zap.Int64("id", id),
		zap.String("name", rec.Name),
		zap.Int("bytes", len(rec.Contents)),
	)

	return rec, nil
}

// FirstByName returns the most recent record with exactly this name,
// or nil when there is none
func (m *Manager) FirstByName(name string) (*types.FileRecord, error) {
	query := `
		SELECT id, name, contents, type, last_modified, path
		FROM files
		WHERE name = ?
		ORDER BY last_modified DESC, id DESC
		LIMIT 1
	`

	rows, err := m.db.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query file record: %w", err)
	}
	defer rows.Close()

	records, err := m.scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Recent returns up to limit records, newest first
func (m *Manager) Recent(limit int) ([]types.FileRecord, error) {
	if limit <= 0 {
		return []types.FileRecord{}, nil
	}

	query := `
		SELECT id, name, contents, type, last_modified, path
		FROM files
		ORDER BY last_modified DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent files: %w", err)
	}
	defer rows.Close()

	return m.scanRecords(rows)
}

func (m *Manager) scanRecords(rows *sql.Rows) ([]types.FileRecord, error) {
	records := []types.FileRecord{}

	for rows.Next() {
		var rec types.FileRecord
		var lastModified int64

		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Contents,
			&rec.Type,
			&lastModified,
			&rec.Path,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}

		rec.LastModified = time.UnixMilli(lastModified)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Prune applies the retention policy and returns the number of deleted records
func (m *Manager) Prune(policy RetentionPolicy, now time.Time) (int64, error) {
	var deleted int64

	if policy.MaxAge > 0 {
		cutoff := now.Add(-policy.MaxAge).UnixMilli()
		res, err := m.db.Exec("DELETE FROM files WHERE last_modified < ?", cutoff)
		if err != nil {
			return deleted, fmt.Errorf("failed to prune old file records: %w", err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}

	if policy.MaxRecords > 0 {
		res, err := m.db.Exec(`
			DELETE FROM files WHERE id NOT IN (
				SELECT id FROM files ORDER BY last_modified DESC, id DESC LIMIT ?
			)
		`, policy.MaxRecords)
		if err != nil {
			return deleted, fmt.Errorf("failed to prune file records: %w", err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}

	if deleted > 0 {
		m.logger.Info("file cache pruned",
			zap.Int64("deleted", deleted),
			zap.Int("max_records", policy.MaxRecords),
			zap.Duration("max_age", policy.MaxAge),
		)
	}

	return deleted, nil
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM files")
	if err != nil {
		return fmt.Errorf("failed to clear file cache: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get file cache count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
