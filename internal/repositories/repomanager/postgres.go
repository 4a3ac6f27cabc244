package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/repositories/comments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/moments"
	"github.com/dmitrijs2005/baconnect/internal/repositories/users"
)

// PostgresManager vends PostgreSQL-backed repositories.
type PostgresManager struct{}

func (m *PostgresManager) Dialect() dbx.Dialect { return dbx.DialectPostgres }

// RunMigrations applies the embedded postgres migrations.
func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, dbx.DialectPostgres)
}

func (m *PostgresManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresManager) Moments(db dbx.DBTX) moments.Repository {
	return moments.NewPostgresRepository(db)
}

func (m *PostgresManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewPostgresRepository(db)
}
