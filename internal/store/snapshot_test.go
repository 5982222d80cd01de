package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/domain"
)

func loadedSnapshot(t *testing.T) catalog.Snapshot {
	t.Helper()
	c := catalog.NewController(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := c.Load([]byte(`[
		{"Title":"B","Posted":"2 hours","Level":"Mid"},
		{"Title":"A","Posted":"10 minutes","Level":"Mid"},
		{"Title":"C","Posted":"bad","Level":"Senior"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	return c.Snapshot()
}

func TestExportFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "view.db")

	n, err := ExportFile(ctx, path, loadedSnapshot(t))
	if err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	if n != 3 {
		t.Fatalf("rows = %d", n)
	}

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Pool.QueryContext(ctx, `SELECT title, posted_rank_minutes FROM jobs ORDER BY position;`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	var got []string
	var ranks []sql.NullInt64
	for rows.Next() {
		var title string
		var rank sql.NullInt64
		if err := rows.Scan(&title, &rank); err != nil {
			t.Fatal(err)
		}
		got = append(got, title)
		ranks = append(ranks, rank)
	}
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("titles = %v", got)
	}
	if ranks[0].Int64 != 10 || ranks[2].Valid {
		t.Fatalf("ranks = %v", ranks)
	}

	var sortKey string
	if err := db.Pool.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'sort';`).Scan(&sortKey); err != nil {
		t.Fatal(err)
	}
	if sortKey != "time" {
		t.Fatalf("sort = %q", sortKey)
	}
}

func TestWriteSnapshotReplacesRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "view.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	snap := loadedSnapshot(t)
	if _, err := WriteSnapshot(ctx, db.Pool, snap); err != nil {
		t.Fatal(err)
	}
	snap.View = catalog.Filter(snap.View, catalog.Criteria{domain.AttrLevel: "Senior"})
	if _, err := WriteSnapshot(ctx, db.Pool, snap); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := db.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count = %d", count)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
