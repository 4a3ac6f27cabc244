package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const userColumns = `id, username, email, password_hash, description, profile_picture_uri`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
	}
	return false
}

func (r *SQLiteRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, email, password_hash, description, profile_picture_uri)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Description, u.ProfilePictureURI).Scan(&u.ID)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET email = ?, password_hash = ?, description = ?, profile_picture_uri = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Email, u.PasswordHash, u.Description, u.ProfilePictureURI, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *SQLiteRepository) GetAny(ctx context.Context) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT 1`)
	return scanUser(row)
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Description, &u.ProfilePictureURI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return u, nil
}
