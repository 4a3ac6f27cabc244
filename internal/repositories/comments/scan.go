package comments

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
)

const commentColumns = `id, moment_id, author, content, created_at`

const orderNewestFirst = ` ORDER BY created_at DESC, id DESC`

func scanComment(row *sql.Row) (*models.Comment, error) {
	c := &models.Comment{}
	if err := row.Scan(&c.ID, &c.MomentID, &c.Author, &c.Content, &c.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return c, nil
}

func scanComments(rows *sql.Rows) ([]models.Comment, error) {
	defer rows.Close()

	result := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.MomentID, &c.Author, &c.Content, &c.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
