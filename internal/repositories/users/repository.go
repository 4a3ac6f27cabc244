// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/models"
)

// Repository describes storage of User rows.
type Repository interface {
	// Create inserts u and sets u.ID. A duplicate username yields
	// common.ErrUsernameTaken; existing rows are never replaced.
	Create(ctx context.Context, u *models.User) (*models.User, error)

	// Update rewrites every mutable column of the row with u.ID.
	Update(ctx context.Context, u *models.User) error

	// GetByUsername returns common.ErrorNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetAny returns the oldest user, or common.ErrorNotFound on an empty table.
	GetAny(ctx context.Context) (*models.User, error)

	// DeleteAll clears the table (full logout wipe).
	DeleteAll(ctx context.Context) error
}
