package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/timex"
)

type CommentService struct {
	q   *query.Queries
	log logging.Logger
	now func() time.Time
}

func NewCommentService(q *query.Queries, log logging.Logger) *CommentService {
	return &CommentService{q: q, log: log.With("module", "comments"), now: time.Now}
}

// Add stores a comment on momentID. Content is trimmed; blank content
// yields common.ErrRequiredFieldsMissing. The moment is not required to
// exist, which lets seed moments collect comments.
func (s *CommentService) Add(ctx context.Context, momentID int64, author, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrRequiredFieldsMissing
	}
	return s.q.InsertComment(ctx, &models.Comment{
		MomentID:  momentID,
		Author:    author,
		Content:   content,
		Timestamp: timex.Millis(s.now()),
	})
}

// Delete removes a comment written by author. Comments of other authors
// yield common.ErrNotCommentAuthor.
func (s *CommentService) Delete(ctx context.Context, commentID int64, author string) error {
	if commentID <= 0 {
		return common.ErrorNotFound
	}
	c, err := s.q.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !s.IsOwn(*c, author) {
		return common.ErrNotCommentAuthor
	}
	err = s.q.DeleteComment(ctx, commentID)
	if errors.Is(err, common.ErrorNotFound) {
		// removed concurrently; the outcome is the same
		return nil
	}
	return err
}

func (s *CommentService) ForMoment(ctx context.Context, momentID int64) <-chan []models.Comment {
	return s.q.CommentsForMoment(ctx, momentID)
}

// IsOwn reports whether c was written by author.
func (s *CommentService) IsOwn(c models.Comment, author string) bool {
	return c.Author == author
}
