// Package comments persists comments attached to moments by id.
//
// The moment id is a plain column, so comments on seed moments (negative
// ids) are stored like any other.
package comments

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	DeleteByID(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)

	// GetForMoment lists the comments of one moment, newest first.
	GetForMoment(ctx context.Context, momentID int64) ([]models.Comment, error)

	// GetAll lists every comment, newest first.
	GetAll(ctx context.Context) ([]models.Comment, error)
}
