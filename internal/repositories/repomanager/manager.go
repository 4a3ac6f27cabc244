// Package repomanager vends dialect-specific repositories bound to a DBTX,
// so callers can run the same code against *sql.DB or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/migrations"
	"github.com/dmitrijs2005/baconnect/internal/repositories/comments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/moments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/users"
)

type Manager interface {
	Dialect() dbx.Dialect
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Moments(db dbx.DBTX) moments.Repository
	Comments(db dbx.DBTX) comments.Repository
}

// migrateUp is a seam for tests that must not touch a real schema.
var migrateUp = migrations.Up

// New returns the manager for d.
func New(d dbx.Dialect) Manager {
	if d == dbx.DialectPostgres {
		return &PostgresManager{}
	}
	return &SQLiteManager{}
}
