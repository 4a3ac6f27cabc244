package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/repositories/comments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/moments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/users"
)

// SQLiteManager vends SQLite-backed repositories.
type SQLiteManager struct{}

func (m *SQLiteManager) Dialect() dbx.Dialect { return dbx.DialectSQLite }

func (m *SQLiteManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DialectSQLite)
}

func (m *SQLiteManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteManager) Moments(db dbx.DBTX) moments.Repository {
	return moments.NewSQLiteRepository(db)
}

func (m *SQLiteManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewSQLiteRepository(db)
}
