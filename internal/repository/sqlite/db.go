// Package sqlite stores a territory catalog in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "territories",
		sql: `
			CREATE TABLE IF NOT EXISTS territories (
				position      INTEGER NOT NULL,
				name          TEXT PRIMARY KEY,
				kind          TEXT NOT NULL CHECK (kind IN ('land', 'sea', 'unmovable')),
				coastal       BOOLEAN NOT NULL DEFAULT 0,
				supply_center BOOLEAN NOT NULL DEFAULT 0
			);
			CREATE TABLE IF NOT EXISTS territory_neighbors (
				territory TEXT NOT NULL REFERENCES territories (name) ON DELETE CASCADE,
				neighbor  TEXT NOT NULL REFERENCES territories (name) ON DELETE CASCADE,
				position  INTEGER NOT NULL,
				PRIMARY KEY (territory, neighbor)
			);
		`,
	},
}

// Open opens (creating if needed) the SQLite file at path and applies
// pending migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return err
	}

	for _, m := range migrations {
		var count int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM migrations WHERE id = ?`, m.id).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.id, m.name, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO migrations (id, name) VALUES (?, ?)`, m.id, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
