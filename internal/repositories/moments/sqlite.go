package moments

import (
	"context"
	"fmt"

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

func (r *SQLiteRepository) Create(ctx context.Context, m *models.Moment) (*models.Moment, error) {
	query := `INSERT INTO moments (image_uri, description, taken_at, location)
		VALUES (?, ?, ?, ?)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, m.ImageURI, m.Description, m.Date, m.Location).Scan(&m.ID); err != nil {
		return nil, fmt.Errorf("failed to insert moment: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.Moment) error {
	query := `UPDATE moments SET image_uri = ?, description = ?, taken_at = ?, location = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, m.ImageURI, m.Description, m.Date, m.Location, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update moment: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM moments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete moment: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Moment, error) {
	return scanMoment(r.db.QueryRowContext(ctx, `SELECT `+momentColumns+` FROM moments WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Moment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+momentColumns+` FROM moments`+orderNewestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to select moments: %w", err)
	}
	return scanMoments(rows)
}

// Search matches with instr. In case-insensitive mode both sides go through
// foldFunc, so stored text folds exactly like seed text (LIKE and lower()
// fold ASCII only).
func (r *SQLiteRepository) Search(ctx context.Context, text string, mode models.MatchMode) ([]models.Moment, error) {
	var (
		where string
		args  []any
	)
	if mode == models.MatchSensitive {
		where = `instr(description, ?) > 0 OR instr(location, ?) > 0`
		args = []any{text, text}
	} else {
		where = fmt.Sprintf(`instr(%[1]s(description), %[1]s(?)) > 0 OR instr(%[1]s(location), %[1]s(?)) > 0`, foldFunc)
		args = []any{text, text}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+momentColumns+` FROM moments WHERE `+where+orderNewestFirst, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search moments: %w", err)
	}
	return scanMoments(rows)
}
