// Package moments persists user-authored moments.
//
// Listings are ordered by date descending with ties broken by id descending.
// Range reads on an empty table return an empty slice, never an error.
package moments

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/models"
)

type Repository interface {
	// Create inserts m, assigning m.ID from the store's key generation.
	Create(ctx context.Context, m *models.Moment) (*models.Moment, error)

	// Update rewrites image, description, date and location of m.ID.
	Update(ctx context.Context, m *models.Moment) error

	// DeleteByID removes one row; common.ErrorNotFound if nothing matched.
	DeleteByID(ctx context.Context, id int64) error

	// GetByID returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.Moment, error)

	GetAll(ctx context.Context) ([]models.Moment, error)

	// Search returns moments whose description or location contains text.
	Search(ctx context.Context, text string, mode models.MatchMode) ([]models.Moment, error)
}
