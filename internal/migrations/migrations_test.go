package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openFileDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "connect.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestUp_CreatesLatestSchema(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t)

	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))

	v, err := Version(ctx, db, dbx.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	assert.Contains(t, columns(t, db, "moments"), "location")
	assert.ElementsMatch(t,
		[]string{"id", "moment_id", "author", "content", "created_at"},
		columns(t, db, "comments"))
}

func TestUp_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t)

	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))
	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))
}

func TestUp_MigratesVersionOneDataForward(t *testing.T) {
	ctx := context.Background()
	db := openFileDB(t)

	require.NoError(t, UpTo(ctx, db, dbx.DialectSQLite, 1))
	assert.NotContains(t, columns(t, db, "moments"), "location")

	_, err := db.Exec(`INSERT INTO moments (image_uri, description, taken_at) VALUES ('a.jpg', 'old', 1)`)
	require.NoError(t, err)

	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))

	var loc string
	require.NoError(t, db.QueryRow(`SELECT location FROM moments WHERE description = 'old'`).Scan(&loc))
	assert.Equal(t, "", loc, "added column defaults to empty string")
}

func TestEmbeddedFilesPerDialect(t *testing.T) {
	for _, d := range []dbx.Dialect{dbx.DialectSQLite, dbx.DialectPostgres} {
		entries, err := Migrations.ReadDir(Dir(d))
		require.NoError(t, err)
		assert.Len(t, entries, 3, string(d))
	}
}
