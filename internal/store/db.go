// Package store writes catalog views into standalone SQLite files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"
)

// exportPragmas suit a file written once by a single connection.
var exportPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(DELETE)",
	"synchronous(NORMAL)",
}

// DB is an open snapshot file with its schema applied.
type DB struct {
	Pool *sql.DB
	Path string
}

func Open(ctx context.Context, path string) (*DB, error) {
	q := url.Values{}
	for _, p := range exportPragmas {
		q.Add("_pragma", p)
	}
	pool, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(1)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.PingContext(pctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := Migrate(pool); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &DB{Pool: pool, Path: path}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}
