// Package store handles SQLite persistence of remembered game setups.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuiclock/internal/clock"
	"github.com/verte-zerg/tuiclock/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so used_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for setup data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS setups (
			id INTEGER PRIMARY KEY,
			player_one TEXT NOT NULL,
			player_two TEXT NOT NULL,
			mode TEXT NOT NULL,
			sudden_death_seconds INTEGER NOT NULL,
			used_at TEXT NOT NULL,
			uses INTEGER NOT NULL DEFAULT 1,
			UNIQUE (player_one, player_two, mode, sudden_death_seconds)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_setups_used_at ON setups(used_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSetup records that a setup was used, bumping its use count when it already exists.
func (s *Store) SaveSetup(ctx context.Context, setup model.Setup) error {
	suddenDeath := setup.SuddenDeathSeconds
	if setup.Mode != clock.SuddenDeath {
		suddenDeath = 0
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO setups (player_one, player_two, mode, sudden_death_seconds, used_at, uses)
		 VALUES (?, ?, ?, ?, ?, 1)
		 ON CONFLICT (player_one, player_two, mode, sudden_death_seconds)
		 DO UPDATE SET used_at = excluded.used_at, uses = uses + 1`,
		setup.PlayerOne,
		setup.PlayerTwo,
		setup.Mode.String(),
		suddenDeath,
		setup.UsedAt.UTC().Format(timeLayout),
	)
	return err
}

// LastSetup returns the most recently used setup. ok is false when none was saved yet.
func (s *Store) LastSetup(ctx context.Context) (setup model.Setup, ok bool, err error) {
	setups, err := s.ListSetups(ctx, 1)
	if err != nil {
		return model.Setup{}, false, err
	}
	if len(setups) == 0 {
		return model.Setup{}, false, nil
	}
	return setups[0], true, nil
}

// ListSetups returns remembered setups, most recently used first. limit <= 0 returns all.
func (s *Store) ListSetups(ctx context.Context, limit int) ([]model.Setup, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_one, player_two, mode, sudden_death_seconds, used_at, uses
		 FROM setups
		 ORDER BY used_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var setups []model.Setup
	for rows.Next() {
		var setup model.Setup
		var mode, usedAt string
		if err := rows.Scan(&setup.PlayerOne, &setup.PlayerTwo, &mode, &setup.SuddenDeathSeconds, &usedAt, &setup.Uses); err != nil {
			return nil, err
		}
		setup.Mode, err = clock.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		setup.UsedAt, err = time.Parse(timeLayout, usedAt)
		if err != nil {
			return nil, err
		}
		setups = append(setups, setup)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return setups, nil
}

// ForgetSetups deletes every remembered setup.
func (s *Store) ForgetSetups(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM setups`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
