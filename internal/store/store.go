// Package store opens the record store for a DSN and applies the schema.
//
// A DSN starting with postgres:// or postgresql:// selects PostgreSQL via
// pgx; anything else is handed to the pure-Go SQLite driver (a file path,
// ":memory:" or a "file:" URI).
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/filex"
	"github.com/dmitrijs2005/baconnect/internal/repositories/repomanager"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Store struct {
	DB      *sql.DB
	Dialect dbx.Dialect
	Repos   repomanager.Manager
}

// Open connects and migrates. A migration failure closes the connection and
// is returned; there is no rollback of partially applied versions.
func Open(ctx context.Context, dsn string) (*Store, error) {
	d := dbx.DialectFromDSN(dsn)
	if d == dbx.DialectSQLite {
		if path := filex.SQLitePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	if d == dbx.DialectSQLite {
		// single writer; also keeps ":memory:" on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}

	repos := repomanager.New(d)
	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{DB: db, Dialect: d, Repos: repos}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
