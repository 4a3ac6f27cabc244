package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentAdd_TrimsAndRejectsBlank(t *testing.T) {
	s := NewCommentService(newQueries(t), logging.Discard())
	ctx := context.Background()

	_, err := s.Add(ctx, 1, "ana", "   ")
	require.ErrorIs(t, err, common.ErrRequiredFieldsMissing)

	c, err := s.Add(ctx, seed.LaBocaID, "ana", "  ¡Qué colores!  ")
	require.NoError(t, err)
	assert.Equal(t, "¡Qué colores!", c.Content)
	assert.Equal(t, seed.LaBocaID, c.MomentID)
	assert.Positive(t, c.Timestamp)
}

func TestCommentDelete_OwnOnly(t *testing.T) {
	s := NewCommentService(newQueries(t), logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mine, err := s.Add(ctx, 5, "ana", "mío")
	require.NoError(t, err)
	theirs, err := s.Add(ctx, 5, "beto", "de beto")
	require.NoError(t, err)

	assert.True(t, s.IsOwn(*mine, "ana"))
	assert.False(t, s.IsOwn(*theirs, "ana"))

	require.ErrorIs(t, s.Delete(ctx, theirs.ID, "ana"), common.ErrNotCommentAuthor)
	require.NoError(t, s.Delete(ctx, mine.ID, "ana"))
	require.ErrorIs(t, s.Delete(ctx, mine.ID, "ana"), common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, 0, "ana"), common.ErrorNotFound)

	left := recv(t, s.ForMoment(ctx, 5))
	assert.Equal(t, []models.Comment{*theirs}, left)
}
