// db.go
//
// Database helpers for the SQL word source.
// Responsibilities:
//   - Opening SQLite (WAL, busy timeout) or Postgres connections.
//   - Applying migrations embedded from ./migrations (idempotent, recorded in _migrations).
//   - Seeding empty word tables from the embedded lists.
//
// Statements use $N placeholders, which both drivers accept.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/words"
	"github.com/robalobadob/wordgrid/migrations"
)

// openDB opens a word database. For sqlite3 the parent directory of a
// file DSN is created and WAL journaling is enabled.
func openDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite3":
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_busy_timeout=5000&_journal_mode=WAL"
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// migrate applies every *.sql file in migrations.FS not yet recorded in
// _migrations, each inside its own transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=$1`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlText, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlText)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES ($1)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// seedWords fills the answers and allowed tables from the embedded lists
// when answers is empty. Returns the number of rows inserted.
func seedWords(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM answers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, t := range []struct{ table, file string }{
		{"answers", assets.AnswersFile},
		{"allowed", assets.AllowedFile},
	} {
		f, err := assets.FS.Open(t.file)
		if err != nil {
			return 0, err
		}
		list, err := words.ReadLines(f)
		_ = f.Close()
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", t.file, err)
		}
		stmt := fmt.Sprintf(`INSERT INTO %s(word) VALUES ($1) ON CONFLICT DO NOTHING`, t.table)
		for _, w := range list {
			if _, err := tx.ExecContext(ctx, stmt, strings.ToLower(w)); err != nil {
				return 0, fmt.Errorf("insert %s: %w", t.table, err)
			}
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Int("rows", inserted).Msg("seeded word tables")
	return inserted, nil
}
