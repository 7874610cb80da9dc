// Package sqlite provides SQLite-backed fitting persistence.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arkavale/gearforge/internal/fitting/storage"
	"github.com/arkavale/gearforge/internal/fitting/storage/sqlite/migrations"
	sqlitemigrate "github.com/arkavale/gearforge/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for fitting settings and saved
// configurations.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a fitting SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSettings loads the persisted settings payload for a profile.
func (s *Store) GetSettings(ctx context.Context, profile string) (storage.SettingsRecord, bool, error) {
	if s == nil || s.sqlDB == nil {
		return storage.SettingsRecord{}, false, fmt.Errorf("storage is not configured")
	}
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return storage.SettingsRecord{}, false, fmt.Errorf("profile is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT profile, payload_json, updated_at
		 FROM settings
		 WHERE profile = ?`,
		profile,
	)

	var record storage.SettingsRecord
	var updatedAt int64
	if err := row.Scan(&record.Profile, &record.PayloadBytes, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.SettingsRecord{}, false, nil
		}
		return storage.SettingsRecord{}, false, fmt.Errorf("get settings: %w", err)
	}
	record.UpdatedAt = unixMillisToTime(updatedAt)
	return record, true, nil
}

// PutSettings upserts the persisted settings payload for a profile.
func (s *Store) PutSettings(ctx context.Context, record storage.SettingsRecord) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.Profile = strings.TrimSpace(record.Profile)
	if record.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	if len(record.PayloadBytes) == 0 {
		return fmt.Errorf("settings payload is required")
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO settings (profile, payload_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(profile) DO UPDATE SET
		   payload_json = excluded.payload_json,
		   updated_at = excluded.updated_at`,
		record.Profile,
		record.PayloadBytes,
		timeToUnixMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

// PutSavedConfig upserts a named fitting setup artifact.
func (s *Store) PutSavedConfig(ctx context.Context, record storage.SavedConfigRecord) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	record.ID = strings.TrimSpace(record.ID)
	if record.ID == "" {
		return fmt.Errorf("saved config id is required")
	}
	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return fmt.Errorf("saved config name is required")
	}
	if len(record.PayloadBytes) == 0 {
		return fmt.Errorf("saved config payload is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO saved_configs (id, name, payload_json, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   payload_json = excluded.payload_json`,
		record.ID,
		record.Name,
		record.PayloadBytes,
		timeToUnixMillis(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put saved config: %w", err)
	}
	return nil
}

// GetSavedConfig loads a saved fitting setup by id.
func (s *Store) GetSavedConfig(ctx context.Context, id string) (storage.SavedConfigRecord, error) {
	if s == nil || s.sqlDB == nil {
		return storage.SavedConfigRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.SavedConfigRecord{}, fmt.Errorf("saved config id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, payload_json, created_at
		 FROM saved_configs
		 WHERE id = ?`,
		id,
	)

	var record storage.SavedConfigRecord
	var createdAt int64
	if err := row.Scan(&record.ID, &record.Name, &record.PayloadBytes, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.SavedConfigRecord{}, storage.ErrNotFound
		}
		return storage.SavedConfigRecord{}, fmt.Errorf("get saved config: %w", err)
	}
	record.CreatedAt = unixMillisToTime(createdAt)
	return record, nil
}

// ListSavedConfigs returns saved fitting setups, newest first.
func (s *Store) ListSavedConfigs(ctx context.Context) ([]storage.SavedConfigRecord, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, payload_json, created_at
		 FROM saved_configs
		 ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved configs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]storage.SavedConfigRecord, 0)
	for rows.Next() {
		var record storage.SavedConfigRecord
		var createdAt int64
		if err := rows.Scan(&record.ID, &record.Name, &record.PayloadBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan saved config: %w", err)
		}
		record.CreatedAt = unixMillisToTime(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved configs: %w", err)
	}
	return records, nil
}

// DeleteSavedConfig removes a saved fitting setup by id.
func (s *Store) DeleteSavedConfig(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("saved config id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saved_configs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete saved config: %w", err)
	}
	return nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ storage.Store = (*Store)(nil)
