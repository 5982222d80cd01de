package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"jobcatalog-engine/internal/catalog"
)

// Migrate creates the snapshot schema. A snapshot file is written once as an
// export artifact; the engine never loads state back from it.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  seq INTEGER NOT NULL,
  title TEXT NOT NULL,
  posted TEXT NOT NULL DEFAULT '',
  posted_rank_minutes INTEGER,
  type TEXT NOT NULL DEFAULT '',
  level TEXT NOT NULL DEFAULT '',
  skill TEXT NOT NULL DEFAULT '',
  detail TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS snapshot_meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_level_type_skill
ON jobs(level, type, skill);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// WriteSnapshot replaces the file's contents with snap's view. Rows keep view
// order in the position column.
func WriteSnapshot(ctx context.Context, db *sql.DB, snap catalog.Snapshot) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta;`); err != nil {
		return 0, fmt.Errorf("clear meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs(position, id, seq, title, posted, posted_rank_minutes, type, level, skill, detail)
VALUES(?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, j := range snap.View {
		var rank sql.NullInt64
		if j.Rank().Ranked() {
			rank = sql.NullInt64{Int64: int64(j.Rank()), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, j.ID, j.Seq, j.Title, j.Posted, rank, j.Type, j.Level, j.Skill, j.Detail); err != nil {
			return 0, fmt.Errorf("insert job %d: %w", i, err)
		}
	}

	criteria, _ := json.Marshal(snap.Criteria)
	meta := map[string]string{
		"written_at": time.Now().UTC().Format(time.RFC3339),
		"total":      fmt.Sprint(snap.Total),
		"sort":       string(snap.Sort),
		"criteria":   string(criteria),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta(key, value) VALUES(?,?);`, k, v); err != nil {
			return 0, fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(snap.View), nil
}

// ExportFile writes snap to a fresh SQLite file at path.
func ExportFile(ctx context.Context, path string, snap catalog.Snapshot) (int, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	db, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return WriteSnapshot(ctx, db.Pool, snap)
}
