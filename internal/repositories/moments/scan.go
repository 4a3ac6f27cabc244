package moments

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

const momentColumns = `id, image_uri, description, taken_at, location`

const orderNewestFirst = ` ORDER BY taken_at DESC, id DESC`

func scanMoment(row *sql.Row) (*models.Moment, error) {
	m := &models.Moment{}
	if err := row.Scan(&m.ID, &m.ImageURI, &m.Description, &m.Date, &m.Location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return m, nil
}

func scanMoments(rows *sql.Rows) ([]models.Moment, error) {
	defer rows.Close()

	result := []models.Moment{}
	for rows.Next() {
		var m models.Moment
		if err := rows.Scan(&m.ID, &m.ImageURI, &m.Description, &m.Date, &m.Location); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func expectOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
