// Package query is the typed access layer over the record store.
//
// Reads come in two shapes: one-shot calls returning a value and live
// sequences (channels) that re-query and re-emit after every committed write
// to a table they depend on. Writes run synchronously and notify the touched
// table only after success.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/dbx"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/metrics"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/store"
)

type Queries struct {
	store    *store.Store
	notifier *live.Notifier
	log      logging.Logger
	mode     models.MatchMode
	metrics  *metrics.Metrics
}

type Option func(*Queries)

// WithMatchMode sets how MomentsMatching compares text. The default is
// case-insensitive.
func WithMatchMode(mode models.MatchMode) Option {
	return func(q *Queries) { q.mode = mode }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(q *Queries) { q.metrics = m }
}

func New(s *store.Store, n *live.Notifier, log logging.Logger, opts ...Option) *Queries {
	q := &Queries{
		store:    s,
		notifier: n,
		log:      log.With("module", "query"),
		mode:     models.MatchInsensitive,
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

func (q *Queries) MatchMode() models.MatchMode { return q.mode }

func (q *Queries) Notifier() *live.Notifier { return q.notifier }

func (q *Queries) committed(t live.Table, op string) {
	q.metrics.Write(string(t), op)
	q.notifier.Notify(t)
}

func watch[T any](ctx context.Context, q *Queries, name string, load func(context.Context) (T, error), tables ...live.Table) <-chan T {
	return live.Watch(ctx, q.notifier, q.log.With("sequence", name), func(ctx context.Context) (T, error) {
		v, err := load(ctx)
		if err == nil {
			q.metrics.Emission(name)
		}
		return v, err
	}, tables...)
}

// ---- moments ----

func (q *Queries) ListMoments(ctx context.Context) ([]models.Moment, error) {
	return q.store.Repos.Moments(q.store.DB).GetAll(ctx)
}

func (q *Queries) SearchMoments(ctx context.Context, text string) ([]models.Moment, error) {
	return q.store.Repos.Moments(q.store.DB).Search(ctx, text, q.mode)
}

// GetMoment returns nil, nil when id is not stored.
func (q *Queries) GetMoment(ctx context.Context, id int64) (*models.Moment, error) {
	m, err := q.store.Repos.Moments(q.store.DB).GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return m, err
}

// AllMoments emits every stored moment, newest first.
func (q *Queries) AllMoments(ctx context.Context) <-chan []models.Moment {
	return watch(ctx, q, "all_moments", q.ListMoments, live.TableMoments)
}

// MomentsMatching emits stored moments whose description or location
// contains text, newest first.
func (q *Queries) MomentsMatching(ctx context.Context, text string) <-chan []models.Moment {
	return watch(ctx, q, "moments_matching", func(ctx context.Context) ([]models.Moment, error) {
		return q.SearchMoments(ctx, text)
	}, live.TableMoments)
}

// Moment emits the moment with id, or nil while it does not exist.
func (q *Queries) Moment(ctx context.Context, id int64) <-chan *models.Moment {
	return watch(ctx, q, "moment", func(ctx context.Context) (*models.Moment, error) {
		return q.GetMoment(ctx, id)
	}, live.TableMoments)
}

func (q *Queries) InsertMoment(ctx context.Context, m *models.Moment) (*models.Moment, error) {
	created, err := q.store.Repos.Moments(q.store.DB).Create(ctx, m)
	if err != nil {
		return nil, err
	}
	q.committed(live.TableMoments, "insert")
	q.log.Debug(ctx, "moment inserted", "id", created.ID)
	return created, nil
}

func (q *Queries) UpdateMoment(ctx context.Context, m *models.Moment) error {
	if m.IsSeed() {
		return common.ErrSeedReadOnly
	}
	if err := q.store.Repos.Moments(q.store.DB).Update(ctx, m); err != nil {
		return err
	}
	q.committed(live.TableMoments, "update")
	return nil
}

func (q *Queries) DeleteMoment(ctx context.Context, id int64) error {
	if models.IsSeedID(id) {
		return common.ErrSeedReadOnly
	}
	if err := q.store.Repos.Moments(q.store.DB).DeleteByID(ctx, id); err != nil {
		return err
	}
	q.committed(live.TableMoments, "delete")
	return nil
}

// ---- comments ----

func (q *Queries) ListComments(ctx context.Context, momentID int64) ([]models.Comment, error) {
	return q.store.Repos.Comments(q.store.DB).GetForMoment(ctx, momentID)
}

func (q *Queries) ListAllComments(ctx context.Context) ([]models.Comment, error) {
	return q.store.Repos.Comments(q.store.DB).GetAll(ctx)
}

// CommentByID returns common.ErrorNotFound when absent.
func (q *Queries) CommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	return q.store.Repos.Comments(q.store.DB).GetByID(ctx, id)
}

// CommentsForMoment emits the comments of momentID, newest first. An
// unknown moment yields empty slices.
func (q *Queries) CommentsForMoment(ctx context.Context, momentID int64) <-chan []models.Comment {
	return watch(ctx, q, "comments_for_moment", func(ctx context.Context) ([]models.Comment, error) {
		return q.ListComments(ctx, momentID)
	}, live.TableComments)
}

func (q *Queries) AllComments(ctx context.Context) <-chan []models.Comment {
	return watch(ctx, q, "all_comments", q.ListAllComments, live.TableComments)
}

func (q *Queries) InsertComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	created, err := q.store.Repos.Comments(q.store.DB).Create(ctx, c)
	if err != nil {
		return nil, err
	}
	q.committed(live.TableComments, "insert")
	return created, nil
}

func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	if err := q.store.Repos.Comments(q.store.DB).DeleteByID(ctx, id); err != nil {
		return err
	}
	q.committed(live.TableComments, "delete")
	return nil
}

// ---- users ----

// UserByUsername returns common.ErrorNotFound when absent.
func (q *Queries) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return q.store.Repos.Users(q.store.DB).GetByUsername(ctx, username)
}

// CurrentUser returns any stored user, or nil, nil when there is none.
func (q *Queries) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := q.store.Repos.Users(q.store.DB).GetAny(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return u, err
}

// AnyUser emits the pseudo-session user, or nil while no user is stored.
func (q *Queries) AnyUser(ctx context.Context) <-chan *models.User {
	return watch(ctx, q, "any_user", q.CurrentUser, live.TableUsers)
}

// InsertUser checks the username and inserts in one transaction.
// A taken username yields common.ErrUsernameTaken; the existing row is kept.
func (q *Queries) InsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	var created *models.User
	err := dbx.WithTx(ctx, q.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := q.store.Repos.Users(tx)

		_, err := repo.GetByUsername(ctx, u.Username)
		switch {
		case err == nil:
			return common.ErrUsernameTaken
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("check username: %w", err)
		}

		created, err = repo.Create(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	q.committed(live.TableUsers, "insert")
	return created, nil
}

func (q *Queries) UpdateUser(ctx context.Context, u *models.User) error {
	if err := q.store.Repos.Users(q.store.DB).Update(ctx, u); err != nil {
		return err
	}
	q.committed(live.TableUsers, "update")
	return nil
}

// ClearUsers deletes every user row (logout wipe).
func (q *Queries) ClearUsers(ctx context.Context) error {
	if err := q.store.Repos.Users(q.store.DB).DeleteAll(ctx); err != nil {
		return err
	}
	q.committed(live.TableUsers, "delete_all")
	return nil
}
