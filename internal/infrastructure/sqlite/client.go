package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/taskwire/backend/internal/config"
)

// Open creates (or opens) the file-backed store and applies the session
// pragmas. Foreign-key enforcement follows configuration: strict installs
// reject relationship rows pointing at missing tasks, lenient ones accept
// them.
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// Pragmas ride on the DSN: they are per-connection in SQLite, so every
	// connection the pool opens (or reopens) must apply them itself.
	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, err
	}

	// SQLite serializes writes; a single connection avoids SQLITE_BUSY
	// under concurrent handlers.
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("connected to sqlite",
		zap.String("path", cfg.Path),
		zap.Bool("foreign_keys", cfg.ForeignKeys),
	)
	return db, nil
}

func dsn(cfg config.DatabaseConfig) string {
	fk := 0
	if cfg.ForeignKeys {
		fk = 1
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(%d)", cfg.Path, fk)
}
