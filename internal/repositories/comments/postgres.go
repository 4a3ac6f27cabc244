package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (moment_id, author, content, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.MomentID, c.Author, c.Content, c.Timestamp).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

func (r *PostgresRepository) GetForMoment(ctx context.Context, momentID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE moment_id = $1`+orderNewestFirst, momentID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanComments(rows)
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+commentColumns+` FROM comments`+orderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanComments(rows)
}
