package moments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Moment) (*models.Moment, error) {
	query :=
		`INSERT INTO moments (image_uri, description, taken_at, location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, m.ImageURI, m.Description, m.Date, m.Location).Scan(&m.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Moment) error {
	query := `UPDATE moments SET image_uri = $1, description = $2, taken_at = $3, location = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, m.ImageURI, m.Description, m.Date, m.Location, m.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM moments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Moment, error) {
	return scanMoment(r.db.QueryRowContext(ctx, `SELECT `+momentColumns+` FROM moments WHERE id = $1`, id))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Moment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+momentColumns+` FROM moments`+orderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanMoments(rows)
}

// Search uses ILIKE (Unicode case folding) or strpos for case-sensitive matching.
func (r *PostgresRepository) Search(ctx context.Context, text string, mode models.MatchMode) ([]models.Moment, error) {
	where := `description ILIKE $1 ESCAPE '\' OR location ILIKE $1 ESCAPE '\'`
	arg := models.LikePattern(text)
	if mode == models.MatchSensitive {
		where = `strpos(description, $1) > 0 OR strpos(location, $1) > 0`
		arg = text
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+momentColumns+` FROM moments WHERE `+where+orderNewestFirst, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanMoments(rows)
}
