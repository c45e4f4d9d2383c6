package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *SQLiteStore) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	if version < 2 {
		if err := migrateV2(ctx, tx); err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulations (
			id              TEXT PRIMARY KEY,
			fund_name       TEXT NOT NULL,
			scenario_name   TEXT NOT NULL,
			known_nav_date  TEXT NOT NULL,
			fund_end_date   TEXT NOT NULL,
			known_nav       TEXT NOT NULL,
			share_count     TEXT NOT NULL,
			impacts_json    TEXT NOT NULL DEFAULT '[]',
			actifs_json     TEXT NOT NULL DEFAULT '[]',
			created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			updated_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			UNIQUE (fund_name, scenario_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_simulations_fund ON simulations(fund_name)`,
		`INSERT INTO schema_version (version) VALUES (1)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV2 adds dated impacts. Rows saved before it load with an empty list.
func migrateV2(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`ALTER TABLE simulations ADD COLUMN impacts_multidates_json TEXT NOT NULL DEFAULT '[]'`,
		`INSERT INTO schema_version (version) VALUES (2)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
