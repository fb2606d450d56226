package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pagescan/internal/model"
)

// DatabaseFile is the file name of the settings database.
const DatabaseFile = "pagescan.db"

// columns maps each setting field to its column. Only these names are ever
// interpolated into SQL.
var columns = map[model.SettingField]string{
	model.SettingImages: "send_images",
	model.SettingVideos: "send_videos",
	model.SettingFiles:  "send_files",
}

// Options configures SQLiteStore behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// SQLiteStore persists settings in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

var _ Store = (*SQLiteStore)(nil)

// Open opens or creates the settings database in dbDir.
func Open(dbDir string, opts Options) (*SQLiteStore, error) {
	dbPath := filepath.Join(dbDir, DatabaseFile)

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database not found at %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serialises writers, so each toggle is atomic.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := store.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS user_settings (
		user_id TEXT PRIMARY KEY,
		send_images INTEGER NOT NULL DEFAULT 1,
		send_videos INTEGER NOT NULL DEFAULT 1,
		send_files INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, userID string) (model.Settings, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return model.Settings{}, err
	}

	var settings model.Settings
	err = s.db.QueryRowContext(ctx,
		`SELECT send_images, send_videos, send_files FROM user_settings WHERE user_id = ?`,
		userID,
	).Scan(&settings.SendImages, &settings.SendVideos, &settings.SendFiles)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

// Toggle implements Store. A user's first toggle inserts a row with the
// field already flipped from its default.
func (s *SQLiteStore) Toggle(ctx context.Context, userID string, field model.SettingField) (model.Settings, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return model.Settings{}, err
	}
	col, ok := columns[field]
	if !ok {
		return model.Settings{}, model.ErrUnknownSettingField
	}

	query := fmt.Sprintf(`
	INSERT INTO user_settings (user_id, %[1]s) VALUES (?, 0)
	ON CONFLICT(user_id) DO UPDATE SET %[1]s = 1 - %[1]s, updated_at = CURRENT_TIMESTAMP
	RETURNING send_images, send_videos, send_files`, col)

	var settings model.Settings
	if err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&settings.SendImages, &settings.SendVideos, &settings.SendFiles); err != nil {
		return model.Settings{}, fmt.Errorf("failed to toggle %s: %w", field, err)
	}

	return settings, nil
}
