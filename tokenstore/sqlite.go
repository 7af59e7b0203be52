package tokenstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "sqlite" migrate driver (pure Go, backed by modernc.org/sqlite).
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the session token in a local SQLite file.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// tokenRow mirrors one row of session_tokens.
type tokenRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// OpenSQLite creates the parent directory if needed, applies pending migrations and
// opens the store. The connection is verified with a ping bounded by cfg.Timeout.
func OpenSQLite(ctx context.Context, cfg *config.SessionConfig, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, apperror.NewStorageError(fmt.Sprintf("failed to create directory for %s", cfg.DBPath), err)
	}

	if err := RunMigrations(cfg.DBPath, logger); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, apperror.NewStorageError(fmt.Sprintf("error opening session store %s", cfg.DBPath), err)
	}
	// A single connection keeps SQLite from reporting SQLITE_BUSY between our own writers.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, apperror.NewStorageError(fmt.Sprintf("error connecting to session store %s", cfg.DBPath), err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// RunMigrations applies any pending migrations embedded in the binary.
// `migrate.ErrNoChange` means the schema is already current and is not an error.
func RunMigrations(dbPath string, logger *zap.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return apperror.NewStorageError("failed to open embedded migrations", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return apperror.NewStorageError("failed to create migrator", err)
	}
	// m.Close() returns two errors, one for the source and one for the database.
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("error closing migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewStorageError("failed to run migrations", err)
	}
	return nil
}

// Load returns the stored token, if any.
func (s *SQLiteStore) Load(ctx context.Context) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM session_tokens WHERE key = ?`, TokenKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, apperror.NewStorageError("failed to load session token", err)
	}
	return value, true, nil
}

// Save upserts the token under TokenKey.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	query := `INSERT INTO session_tokens (key, value, updated_at)
              VALUES (:key, :value, CURRENT_TIMESTAMP)
              ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.NamedExecContext(ctx, query, tokenRow{Key: TokenKey, Value: token}); err != nil {
		return apperror.NewStorageError("failed to save session token", err)
	}
	s.logger.Debug("session token saved")
	return nil
}

// Clear deletes the token row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE key = ?`, TokenKey); err != nil {
		return apperror.NewStorageError("failed to clear session token", err)
	}
	s.logger.Debug("session token cleared")
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
