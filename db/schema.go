// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/giftswap/cliparse"
)

// Open connects to the configured database, verifies the connection and creates the schema.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := cfg.DatabaseType, cfg.DatabaseURL
	if driver == cliparse.DatabaseSQLite && !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == cliparse.DatabaseSQLite {
		// SQLite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn, driver); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	blobType := "BLOB"
	if dialect == cliparse.DatabasePostgres {
		blobType = "BYTEA"
	}

	_, err := db.Exec(strings.ReplaceAll(schema, "{{BLOB}}", blobType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Key-value blobs (exchanges and slug index)
CREATE TABLE IF NOT EXISTS blob_entry (
    blob_key TEXT PRIMARY KEY,
    data {{BLOB}} NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Kudos boards
CREATE TABLE IF NOT EXISTS kudos_board (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    recipient_name TEXT NOT NULL,
    creator_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS kudos (
    id TEXT PRIMARY KEY,
    board_id TEXT NOT NULL REFERENCES kudos_board(id) ON DELETE CASCADE,
    author TEXT NOT NULL,
    message TEXT NOT NULL,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kudos_board_id ON kudos(board_id);

-- Baby pools
CREATE TABLE IF NOT EXISTS baby_pool (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    parent_names TEXT NOT NULL,
    due_date TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    actual_birth_date TEXT,
    actual_weight_grams INTEGER,
    actual_sex TEXT,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS baby_guess (
    id TEXT PRIMARY KEY,
    pool_id TEXT NOT NULL REFERENCES baby_pool(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL,
    birth_date TEXT NOT NULL,
    weight_grams INTEGER NOT NULL,
    sex TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (pool_id, name_key)
);

CREATE INDEX IF NOT EXISTS idx_baby_guess_pool_id ON baby_guess(pool_id);
`
