// Package migrations embeds the goose schema migrations for every supported
// dialect and applies them. Versions are additive: 1 creates users and
// moments, 2 adds moments.location, 3 adds the comments table.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the directory inside Migrations holding the files for d.
func Dir(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

func gooseDialect(d dbx.Dialect) goose.Dialect {
	if d == dbx.DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

func newProvider(db *sql.DB, d dbx.Dialect) (*goose.Provider, error) {
	fsys, err := fs.Sub(Migrations, Dir(d))
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(gooseDialect(d), db, fsys)
}

// Up applies every pending migration for dialect d. Already applied versions
// are skipped, so Up is safe to call on each start.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	p, err := newProvider(db, d)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// UpTo applies migrations up to and including version.
func UpTo(ctx context.Context, db *sql.DB, d dbx.Dialect, version int64) error {
	p, err := newProvider(db, d)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	if _, err := p.UpTo(ctx, version); err != nil {
		return fmt.Errorf("migrate up to %d: %w", version, err)
	}
	return nil
}

// Version returns the current schema version recorded by goose.
func Version(ctx context.Context, db *sql.DB, d dbx.Dialect) (int64, error) {
	p, err := newProvider(db, d)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}
