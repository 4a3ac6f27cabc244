package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query := `INSERT INTO comments (moment_id, author, content, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.MomentID, c.Author, c.Content, c.Timestamp).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
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

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetForMoment(ctx context.Context, momentID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE moment_id = ?`+orderNewestFirst, momentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select comments: %w", err)
	}
	return scanComments(rows)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+commentColumns+` FROM comments`+orderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to select comments: %w", err)
	}
	return scanComments(rows)
}
